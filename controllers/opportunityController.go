package controllers

import (
	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type opportunityInput struct {
	Title      string `json:"title" validate:"required"`
	CustomerId string `json:"customer_id" validate:"required,uuid4"`
	CompanyId  string `json:"company_id" validate:"required,uuid4"`
	Notes      string `json:"notes"`
}

// CreateOpportunity opens a new deal. The stage is always "lead" on creation;
// movement happens only through the explicit stage endpoint.
func CreateOpportunity(c *fiber.Ctx) error {
	var data opportunityInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", data.CustomerId).Error; err != nil {
		return err
	}
	var company models.Company
	if err := database.DB.First(&company, "id = ?", data.CompanyId).Error; err != nil {
		return err
	}

	userID, _ := c.Locals("userID").(string)
	opportunity := models.Opportunity{
		Title:      data.Title,
		CustomerId: data.CustomerId,
		CompanyId:  data.CompanyId,
		Stage:      models.StageLead,
		Notes:      data.Notes,
		CreatedBy:  userID,
	}

	if err := database.DB.Create(&opportunity).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(opportunity)
}

func GetOpportunities(c *fiber.Ctx) error {
	q := database.DB.Preload("Customer").Preload("Company").Order("created_at")
	if customerId := c.Query("customer_id"); customerId != "" {
		q = q.Where("customer_id = ?", customerId)
	}
	if stage := c.Query("stage"); stage != "" {
		if !models.ValidStage(stage) {
			return services.ErrInvalidStage
		}
		q = q.Where("stage = ?", stage)
	}

	var opportunities []models.Opportunity
	if err := q.Find(&opportunities).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"opportunities": opportunities,
		"message":       "success",
	})
}

func GetOpportunity(c *fiber.Ctx) error {
	var opportunity models.Opportunity
	if err := database.DB.Preload("Customer").Preload("Company").
		First(&opportunity, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(opportunity)
}

type opportunityPatch struct {
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}

func UpdateOpportunity(c *fiber.Ctx) error {
	var data opportunityPatch
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&data)

	var opportunity models.Opportunity
	if err := database.DB.First(&opportunity, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&data, nil)
	if len(updates) == 0 {
		return c.JSON(opportunity)
	}
	if err := database.DB.Model(&opportunity).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(opportunity)
}

type stageInput struct {
	Stage string `json:"stage" validate:"required"`
}

// MoveStage overwrites the stage unconditionally. All six stages are freely
// reachable from any other (board drag-and-drop, including reverts); only
// values outside the enumeration are rejected.
func MoveStage(c *fiber.Ctx) error {
	var data stageInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	if !models.ValidStage(data.Stage) {
		return services.ErrInvalidStage
	}

	var opportunity models.Opportunity
	if err := database.DB.First(&opportunity, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	if err := database.DB.Model(&opportunity).Update("stage", data.Stage).Error; err != nil {
		return err
	}
	return c.JSON(opportunity)
}

// DeleteOpportunity refuses to remove an opportunity that still has
// quotations attached.
func DeleteOpportunity(c *fiber.Ctx) error {
	id := c.Params("id")

	var opportunity models.Opportunity
	if err := database.DB.First(&opportunity, "id = ?", id).Error; err != nil {
		return err
	}

	var dependents int64
	if err := database.DB.Model(&models.Quotation{}).Where("opportunity_id = ?", id).Count(&dependents).Error; err != nil {
		return err
	}
	if dependents > 0 {
		return services.ErrHasDependents
	}

	if err := database.DB.Delete(&opportunity).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
