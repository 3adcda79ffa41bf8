package controllers

import (
	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type customerInput struct {
	Name          string `json:"name" validate:"required"`
	Address       string `json:"address" validate:"required"`
	TaxId         string `json:"tax_id"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
}

func CreateCustomer(c *fiber.Ctx) error {
	var data customerInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	customer := models.Customer{
		Name:          data.Name,
		Address:       data.Address,
		TaxId:         data.TaxId,
		ContactPerson: data.ContactPerson,
		Phone:         data.Phone,
		Email:         data.Email,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer
	if err := database.DB.Order("created_at").Find(&customers).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"customers": customers,
		"message":   "success",
	})
}

func GetCustomer(c *fiber.Ctx) error {
	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(customer)
}

type customerPatch struct {
	Name          *string `json:"name"`
	Address       *string `json:"address"`
	TaxId         *string `json:"tax_id"`
	ContactPerson *string `json:"contact_person"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
}

func UpdateCustomer(c *fiber.Ctx) error {
	var data customerPatch
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&data)

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&data, nil)
	if len(updates) == 0 {
		return c.JSON(customer)
	}
	if err := database.DB.Model(&customer).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(customer)
}

// DeleteCustomer refuses to remove a customer that still has opportunities.
func DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		return err
	}

	var dependents int64
	if err := database.DB.Model(&models.Opportunity{}).Where("customer_id = ?", id).Count(&dependents).Error; err != nil {
		return err
	}
	if dependents > 0 {
		return services.ErrHasDependents
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
