package controllers

import (
	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type companyInput struct {
	NameTH            string `json:"name_th" validate:"required"`
	NameEN            string `json:"name_en" validate:"required"`
	Address           string `json:"address" validate:"required"`
	Phone             string `json:"phone"`
	Email             string `json:"email" validate:"omitempty,email"`
	TaxId             string `json:"tax_id" validate:"required"`
	BankName          string `json:"bank_name"`
	BankBranch        string `json:"bank_branch"`
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BOIExempt         bool   `json:"boi_exempt"`
	ManagingDirector  string `json:"managing_director"`
	LogoURL           string `json:"logo_url"`
	SignatureURL      string `json:"signature_url"`
}

func CreateCompany(c *fiber.Ctx) error {
	var data companyInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	company := models.Company{
		NameTH:            data.NameTH,
		NameEN:            data.NameEN,
		Address:           data.Address,
		Phone:             data.Phone,
		Email:             data.Email,
		TaxId:             data.TaxId,
		BankName:          data.BankName,
		BankBranch:        data.BankBranch,
		BankAccountName:   data.BankAccountName,
		BankAccountNumber: data.BankAccountNumber,
		BOIExempt:         data.BOIExempt,
		ManagingDirector:  data.ManagingDirector,
		LogoURL:           data.LogoURL,
		SignatureURL:      data.SignatureURL,
	}

	if err := database.DB.Create(&company).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(company)
}

func GetCompanies(c *fiber.Ctx) error {
	var companies []models.Company
	if err := database.DB.Order("created_at").Find(&companies).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"companies": companies,
		"message":   "success",
	})
}

func GetCompany(c *fiber.Ctx) error {
	var company models.Company
	if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(company)
}

type companyPatch struct {
	NameTH            *string `json:"name_th"`
	NameEN            *string `json:"name_en"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	TaxId             *string `json:"tax_id"`
	BankName          *string `json:"bank_name"`
	BankBranch        *string `json:"bank_branch"`
	BankAccountName   *string `json:"bank_account_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	BOIExempt         *bool   `json:"boi_exempt"`
	ManagingDirector  *string `json:"managing_director"`
	LogoURL           *string `json:"logo_url"`
	SignatureURL      *string `json:"signature_url"`
}

// UpdateCompany patches company master data. Companies referenced by existing
// quotations can still be edited — the print payload reflects live data, so
// treat edits to issuing details with care.
func UpdateCompany(c *fiber.Ctx) error {
	var data companyPatch
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	utils.NormalizePtrDTO(&data)

	var company models.Company
	if err := database.DB.First(&company, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	updates := utils.UpdatesFromPtrDTO(&data, nil)
	if len(updates) == 0 {
		return c.JSON(company)
	}
	if err := database.DB.Model(&company).Updates(updates).Error; err != nil {
		return err
	}
	return c.JSON(company)
}

// DeleteCompany refuses to remove a company that still issues opportunities
// or quotations (no cascade, no silent orphans).
func DeleteCompany(c *fiber.Ctx) error {
	id := c.Params("id")

	var company models.Company
	if err := database.DB.First(&company, "id = ?", id).Error; err != nil {
		return err
	}

	var dependents int64
	if err := database.DB.Model(&models.Opportunity{}).Where("company_id = ?", id).Count(&dependents).Error; err != nil {
		return err
	}
	if dependents == 0 {
		if err := database.DB.Model(&models.Quotation{}).Where("company_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
	}
	if dependents > 0 {
		return services.ErrHasDependents
	}

	if err := database.DB.Delete(&company).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
