package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quotation statuses. There is no enforced transition order between them.
const (
	StatusDraft    = "draft"
	StatusSent     = "sent"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Quotation is a priced, numbered document issued under one opportunity.
// quotation_number is unique and immutable once assigned; revision is scoped
// per opportunity. sub_total/vat/grand_total are writer-computed (see
// services.ComputeTotals) and must never be set independently.
type Quotation struct {
	Id              string `json:"id" gorm:"primaryKey"`
	QuotationNumber string `json:"quotation_number" gorm:"uniqueIndex;not null"`

	OpportunityId string      `json:"opportunity_id" gorm:"not null;index"`
	Opportunity   Opportunity `json:"-" gorm:"foreignKey:OpportunityId;references:Id;constraint:OnDelete:RESTRICT"`
	CompanyId     string      `json:"company_id" gorm:"not null"`
	CustomerId    string      `json:"customer_id" gorm:"not null"`

	Items      []QuotationItem `json:"items" gorm:"foreignKey:QuotationId;constraint:OnDelete:CASCADE"`
	SubTotal   float64         `json:"sub_total" gorm:"type:numeric(12,2)"`
	Vat        float64         `json:"vat" gorm:"type:numeric(12,2)"`
	GrandTotal float64         `json:"grand_total" gorm:"type:numeric(12,2)"`
	IncludeVat bool            `json:"include_vat"`

	Remarks  string `json:"remarks"`
	Revision int    `json:"revision" gorm:"not null;default:1"`
	Status   string `json:"status" gorm:"type:VARCHAR(10);not null;default:draft"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (quotation *Quotation) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	quotation.Id = uuid.NewString()
	return
}

// QuotationItem is one priced line. Description may contain newline-delimited
// sub-bullets prefixed with "-"; blank-description items are filtered out
// before persistence.
type QuotationItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	QuotationId string  `json:"-" gorm:"index;not null"`
	Description string  `json:"description"`
	Price       float64 `json:"price" gorm:"type:numeric(12,2)"`
}

// QuotationSnapshot is an immutable record of the fully-resolved document,
// taken when a quotation is marked sent or accepted.
type QuotationSnapshot struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	QuotationId string         `json:"quotation_id" gorm:"index:idx_quotation_snapshots_quotation_seq,unique,priority:1"`
	SeqNo       int            `json:"seq_no" gorm:"not null;index:idx_quotation_snapshots_quotation_seq,unique,priority:2"`
	Status      string         `json:"status" gorm:"type:VARCHAR(10)"`
	Document    datatypes.JSON `json:"document" gorm:"type:jsonb"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ValidStatus reports whether status is one of the enumerated values.
func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
