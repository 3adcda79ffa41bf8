package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pipeline stages. An opportunity always starts in StageLead; users may move
// it freely between any of the six stages (kanban-style, reverts allowed).
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageWon         = "won"
	StageLost        = "lost"
)

// Stages lists all pipeline stages in board order.
var Stages = []string{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

// Opportunity is a tracked sales deal.
type Opportunity struct {
	Id         string   `json:"id" gorm:"primaryKey"`
	Title      string   `json:"title" gorm:"not null"`
	CustomerId string   `json:"customer_id" gorm:"not null;index"`
	Customer   Customer `json:"customer" gorm:"foreignKey:CustomerId;references:Id;constraint:OnDelete:RESTRICT"`
	CompanyId  string   `json:"company_id" gorm:"not null"`
	Company    Company  `json:"company" gorm:"foreignKey:CompanyId;references:Id;constraint:OnDelete:RESTRICT"`
	Stage      string   `json:"stage" gorm:"type:VARCHAR(20);not null;default:lead"`
	Notes      string   `json:"notes"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (opportunity *Opportunity) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	opportunity.Id = uuid.NewString()
	return
}

// ValidStage reports whether stage is one of the six enumerated values.
func ValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}
