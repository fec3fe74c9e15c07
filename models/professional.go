package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CompensationPercentage = "percentage"
	CompensationSalary     = "salary"
)

type Professional struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	Name      string `gorm:"not null" json:"name"`
	Specialty string `json:"specialty"`
	Active    bool   `gorm:"default:true" json:"active"`

	// Either a percentage of each executed service or a fixed salary.
	CompensationType     string   `gorm:"type:varchar(20);not null;default:'percentage'" json:"compensationType"`
	CommissionPercentage *float64 `json:"commissionPercentage"`
	SalaryCents          *int64   `json:"salaryCents"`

	gorm.Model `json:"-"`
}

func (p *Professional) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
