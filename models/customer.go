package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	Id            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null;unique"`
	Address       string    `json:"address" gorm:"not null"`
	TaxId         string    `json:"tax_id"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	CreatedAt     time.Time `json:"created_at"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}
