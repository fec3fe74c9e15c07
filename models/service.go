package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	Name            string `gorm:"not null" json:"name"`
	DurationMinutes int    `gorm:"not null;default:30" json:"durationMinutes"`
	PriceCents      int64  `gorm:"not null;default:0" json:"priceCents"`
	Active          bool   `gorm:"default:true" json:"active"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
