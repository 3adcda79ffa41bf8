package controllers

import (
	"encoding/json"
	"time"

	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"
	"quotation-backend/services"
	"quotation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type quotationItemInput struct {
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type quotationInput struct {
	OpportunityId string               `json:"opportunity_id" validate:"required,uuid4"`
	Items         []quotationItemInput `json:"items" validate:"required,min=1,dive"`
	IncludeVat    bool                 `json:"include_vat"`
	Remarks       string               `json:"remarks"`
}

func toItems(inputs []quotationItemInput) []models.QuotationItem {
	items := make([]models.QuotationItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.QuotationItem{
			Description: in.Description,
			Price:       utils.Round2(in.Price),
		})
	}
	return items
}

// CreateQuotation issues a new numbered document under an opportunity.
// Company and customer are copied from the parent opportunity so the three
// always agree. Number allocation and the insert run in one transaction,
// retried on duplicate-number conflicts (see database.RunInTxRetry); sequence
// exhaustion is not retried.
func CreateQuotation(c *fiber.Ctx) error {
	var data quotationInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	var opportunity models.Opportunity
	if err := database.DB.First(&opportunity, "id = ?", data.OpportunityId).Error; err != nil {
		return err
	}

	items := services.FilterItems(toItems(data.Items))
	if len(items) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "quotation needs at least one non-blank item")
	}
	subTotal, vat, grandTotal := services.ComputeTotals(items, data.IncludeVat)

	userID, _ := c.Locals("userID").(string)

	var quotation models.Quotation
	err := database.RunInTxRetry(database.DB, func(tx *gorm.DB) error {
		number, err := services.NextQuotationNumber(tx, services.Period(time.Now()))
		if err != nil {
			return err
		}
		revision, err := services.NextRevision(tx, opportunity.Id)
		if err != nil {
			return err
		}

		quotation = models.Quotation{
			QuotationNumber: number,
			OpportunityId:   opportunity.Id,
			CompanyId:       opportunity.CompanyId,
			CustomerId:      opportunity.CustomerId,
			Items:           items,
			SubTotal:        subTotal,
			Vat:             vat,
			GrandTotal:      grandTotal,
			IncludeVat:      data.IncludeVat,
			Remarks:         data.Remarks,
			Revision:        revision,
			Status:          models.StatusDraft,
			CreatedBy:       userID,
		}
		return tx.Create(&quotation).Error
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(quotation)
}

func GetQuotations(c *fiber.Ctx) error {
	q := database.DB.Preload("Items").Order("quotation_number")
	if opportunityId := c.Query("opportunity_id"); opportunityId != "" {
		q = q.Where("opportunity_id = ?", opportunityId)
	}

	var quotations []models.Quotation
	if err := q.Find(&quotations).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"quotations": quotations,
		"message":    "success",
	})
}

func GetQuotation(c *fiber.Ctx) error {
	var quotation models.Quotation
	if err := database.DB.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}
	return c.JSON(quotation)
}

type quotationPatch struct {
	Items      []quotationItemInput `json:"items"`
	IncludeVat *bool                `json:"include_vat"`
	Remarks    *string              `json:"remarks"`
}

// UpdateQuotation replaces items/VAT flag/remarks and recomputes the totals.
// The quotation number and revision never change on edit — a new document for
// the same opportunity is the only thing that advances the revision.
func UpdateQuotation(c *fiber.Ctx) error {
	var data quotationPatch
	if err := c.BodyParser(&data); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	for i := range data.Items {
		if err := middlewares.ValidateStruct(&data.Items[i]); err != nil {
			return err
		}
	}

	var quotation models.Quotation
	if err := database.DB.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	items := quotation.Items
	if data.Items != nil {
		items = services.FilterItems(toItems(data.Items))
		if len(items) == 0 {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "quotation needs at least one non-blank item")
		}
	}
	includeVat := quotation.IncludeVat
	if data.IncludeVat != nil {
		includeVat = *data.IncludeVat
	}
	subTotal, vat, grandTotal := services.ComputeTotals(items, includeVat)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if data.Items != nil {
			if err := tx.Where("quotation_id = ?", quotation.Id).Delete(&models.QuotationItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].ID = 0
				items[i].QuotationId = quotation.Id
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		updates := map[string]any{
			"sub_total":   subTotal,
			"vat":         vat,
			"grand_total": grandTotal,
			"include_vat": includeVat,
		}
		if data.Remarks != nil {
			updates["remarks"] = *data.Remarks
		}
		return tx.Model(&quotation).Updates(updates).Error
	})
	if err != nil {
		return err
	}

	quotation.Items = items
	return c.JSON(quotation)
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateQuotationStatus sets the document status. No transition order is
// enforced. Marking a quotation sent or accepted archives a jsonb snapshot of
// the fully-resolved document.
func UpdateQuotationStatus(c *fiber.Ctx) error {
	var data statusInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	if !models.ValidStatus(data.Status) {
		return services.ErrInvalidStatus
	}

	var quotation models.Quotation
	if err := database.DB.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&quotation).Update("status", data.Status).Error; err != nil {
			return err
		}
		if data.Status != models.StatusSent && data.Status != models.StatusAccepted {
			return nil
		}
		return snapshotQuotation(tx, &quotation, data.Status)
	})
	if err != nil {
		return err
	}

	return c.JSON(quotation)
}

func snapshotQuotation(tx *gorm.DB, quotation *models.Quotation, status string) error {
	doc, err := resolveDocument(tx, quotation)
	if err != nil {
		return err
	}
	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	var seq int64
	if err := tx.Model(&models.QuotationSnapshot{}).Where("quotation_id = ?", quotation.Id).Count(&seq).Error; err != nil {
		return err
	}
	return tx.Create(&models.QuotationSnapshot{
		QuotationId: quotation.Id,
		SeqNo:       int(seq) + 1,
		Status:      status,
		Document:    blob,
	}).Error
}

func DeleteQuotation(c *fiber.Ctx) error {
	var quotation models.Quotation
	if err := database.DB.First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.Id).Delete(&models.QuotationItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", quotation.Id).Delete(&models.QuotationSnapshot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&quotation).Error
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// PrintQuotation returns the fully-resolved document for the external
// rendering collaborator: totals computed, items filtered, issuing company
// and customer joined in.
func PrintQuotation(c *fiber.Ctx) error {
	var quotation models.Quotation
	if err := database.DB.Preload("Items").First(&quotation, "id = ?", c.Params("id")).Error; err != nil {
		return err
	}

	doc, err := resolveDocument(database.DB, &quotation)
	if err != nil {
		return err
	}
	return c.JSON(doc)
}

func resolveDocument(tx *gorm.DB, quotation *models.Quotation) (fiber.Map, error) {
	var company models.Company
	if err := tx.First(&company, "id = ?", quotation.CompanyId).Error; err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := tx.First(&customer, "id = ?", quotation.CustomerId).Error; err != nil {
		return nil, err
	}
	return fiber.Map{
		"quotation": quotation,
		"company":   company,
		"customer":  customer,
	}, nil
}
