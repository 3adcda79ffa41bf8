package controllers

import (
	"quotation-backend/database"
	"quotation-backend/models"
	"quotation-backend/services"

	"github.com/gofiber/fiber/v2"
)

// GetOpportunityValue returns the representative pipeline value of one
// opportunity (accepted quotation preferred, else most recent, else 0).
func GetOpportunityValue(c *fiber.Ctx) error {
	id := c.Params("id")

	var opportunity models.Opportunity
	if err := database.DB.First(&opportunity, "id = ?", id).Error; err != nil {
		return err
	}

	var quotations []models.Quotation
	if err := database.DB.Where("opportunity_id = ?", id).Find(&quotations).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"opportunity_id": opportunity.Id,
		"value":          services.OpportunityValue(quotations),
		"quotations":     len(quotations),
	})
}

// GetCustomerPortfolio rolls the per-opportunity representative values up to
// one customer. Recomputed on every call, nothing cached.
func GetCustomerPortfolio(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		return err
	}

	var opportunities []models.Opportunity
	if err := database.DB.Where("customer_id = ?", id).Order("created_at").Find(&opportunities).Error; err != nil {
		return err
	}

	byOpportunity := make(map[string][]models.Quotation, len(opportunities))
	if len(opportunities) > 0 {
		ids := make([]string, 0, len(opportunities))
		for _, op := range opportunities {
			ids = append(ids, op.Id)
		}
		var quotations []models.Quotation
		if err := database.DB.Where("opportunity_id IN ?", ids).Find(&quotations).Error; err != nil {
			return err
		}
		for _, q := range quotations {
			byOpportunity[q.OpportunityId] = append(byOpportunity[q.OpportunityId], q)
		}
	}

	type opportunityValue struct {
		models.Opportunity
		Value float64 `json:"value"`
	}
	values := make([]opportunityValue, 0, len(opportunities))
	for _, op := range opportunities {
		values = append(values, opportunityValue{
			Opportunity: op,
			Value:       services.OpportunityValue(byOpportunity[op.Id]),
		})
	}

	return c.JSON(fiber.Map{
		"customer":      customer,
		"opportunities": values,
		"total_value":   services.PortfolioTotal(opportunities, byOpportunity),
	})
}
