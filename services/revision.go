package services

import (
	"quotation-backend/models"

	"gorm.io/gorm"
)

// NextRevision returns the revision ordinal for a new quotation under the
// given opportunity: the count of quotations already issued for it, plus one.
// Editing an existing quotation never changes its revision — only creating a
// new document advances the ordinal. Revision is scoped per opportunity and
// is independent of the period-scoped quotation number.
func NextRevision(tx *gorm.DB, opportunityId string) (int, error) {
	var count int64
	err := tx.Model(&models.Quotation{}).
		Where("opportunity_id = ?", opportunityId).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}
