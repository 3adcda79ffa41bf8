package controllers

import (
	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type employeeInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

func CreateEmployee(c *fiber.Ctx) error {
	var data employeeInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	employee := models.Employee{
		Username: data.Username,
		FullName: data.FullName,
		Email:    data.Email,
		Role:     data.Role,
	}
	employee.SetPassword(data.Password)

	if err := database.DB.Create(&employee).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

func GetEmployees(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := database.DB.Order("created_at").Find(&employees).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"employees": employees,
		"message":   "success",
	})
}

type employeePatch struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

func UpdateEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var data employeePatch
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&data)

	if data.Role != nil && !models.ValidRole(*data.Role) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid role")
	}

	var employee models.Employee
	if err := database.DB.First(&employee, "id = ?", id).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&data, nil)
	delete(updates, "password")
	if data.Password != nil && *data.Password != "" {
		employee.SetPassword(*data.Password)
		updates["password"] = employee.Password
	}
	if len(updates) == 0 {
		return c.JSON(employee)
	}

	if err := database.DB.Model(&employee).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(employee)
}

func DeleteEmployee(c *fiber.Ctx) error {
	id := c.Params("id")

	var employee models.Employee
	if err := database.DB.First(&employee, "id = ?", id).Error; err != nil {
		return err
	}

	// Never delete the last admin; there would be no way back in.
	if employee.Role == models.RoleAdmin {
		var admins int64
		if err := database.DB.Model(&models.Employee{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
			return err
		}
		if admins <= 1 {
			return fiber.NewError(fiber.StatusConflict, "cannot delete the last admin")
		}
	}

	if err := database.DB.Delete(&employee).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
