package services

import (
	"strings"

	"quotation-backend/models"
	"quotation-backend/utils"
)

// VATRate is the Thai value-added tax rate applied when a quotation opts in.
const VATRate = 0.07

// FilterItems drops items whose description is blank. Blank lines are a UI
// artifact (the form always shows at least one empty row) and are never stored.
func FilterItems(items []models.QuotationItem) []models.QuotationItem {
	kept := make([]models.QuotationItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// ComputeTotals derives sub_total, vat and grand_total from the given items.
// Items must already be filtered (see FilterItems). This is the single entry
// point for the derived money fields: every item or VAT-flag mutation goes
// through here, and the three values are never set independently.
func ComputeTotals(items []models.QuotationItem, includeVat bool) (subTotal, vat, grandTotal float64) {
	for _, item := range items {
		subTotal += item.Price
	}
	subTotal = utils.Round2(subTotal)
	if includeVat {
		vat = utils.Round2(subTotal * VATRate)
	}
	grandTotal = utils.Round2(subTotal + vat)
	return subTotal, vat, grandTotal
}
