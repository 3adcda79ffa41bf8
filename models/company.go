package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is an issuing entity — the "from" party on a quotation.
type Company struct {
	Id                string    `json:"id" gorm:"primaryKey"`
	NameTH            string    `json:"name_th" gorm:"not null;unique"`
	NameEN            string    `json:"name_en" gorm:"not null"`
	Address           string    `json:"address" gorm:"not null"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	TaxId             string    `json:"tax_id" gorm:"not null"`
	BankName          string    `json:"bank_name"`
	BankBranch        string    `json:"bank_branch"`
	BankAccountName   string    `json:"bank_account_name"`
	BankAccountNumber string    `json:"bank_account_number"`
	BOIExempt         bool      `json:"boi_exempt"`
	ManagingDirector  string    `json:"managing_director"`
	LogoURL           string    `json:"logo_url"`
	SignatureURL      string    `json:"signature_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func (company *Company) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	company.Id = uuid.NewString()
	return
}
