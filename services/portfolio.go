package services

import "quotation-backend/models"

// OpportunityValue derives the single representative value of an opportunity
// from its quotations:
//
//  1. an accepted quotation wins; with several accepted, the highest
//     quotation number is used (the source picked whichever came back first —
//     this tie-break makes the choice deterministic);
//  2. otherwise the most recently issued quotation, i.e. the highest
//     quotation number (string order is numeric order here thanks to the
//     fixed-width zero-padded suffix);
//  3. no quotations at all means zero.
//
// Pure derivation, recomputed on every view; nothing is cached or persisted.
func OpportunityValue(quotations []models.Quotation) float64 {
	var accepted, latest *models.Quotation
	for i := range quotations {
		q := &quotations[i]
		if q.Status == models.StatusAccepted && (accepted == nil || q.QuotationNumber > accepted.QuotationNumber) {
			accepted = q
		}
		if latest == nil || q.QuotationNumber > latest.QuotationNumber {
			latest = q
		}
	}
	if accepted != nil {
		return accepted.GrandTotal
	}
	if latest != nil {
		return latest.GrandTotal
	}
	return 0
}

// PortfolioTotal sums the representative value over a customer's
// opportunities. quotationsByOpportunity maps opportunity id to its
// quotations; opportunities without an entry contribute zero.
func PortfolioTotal(opportunities []models.Opportunity, quotationsByOpportunity map[string][]models.Quotation) float64 {
	var total float64
	for _, op := range opportunities {
		total += OpportunityValue(quotationsByOpportunity[op.Id])
	}
	return total
}
