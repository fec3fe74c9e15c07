package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	Name       string `gorm:"not null" json:"name"`
	PriceCents int64  `gorm:"not null;default:0" json:"priceCents"`
	StockQty   int    `gorm:"not null;default:0" json:"stockQty"`
	Active     bool   `gorm:"default:true" json:"active"`

	gorm.Model `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
