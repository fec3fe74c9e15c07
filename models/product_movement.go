package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MovementSale        = "sale"
	MovementConsumption = "consumption"
	MovementAdjustment  = "adjustment"
)

type ProductMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	ProductID  uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`

	Type string `gorm:"type:varchar(20);not null" json:"type"`
	Qty  int    `gorm:"not null" json:"qty"`

	// Sale only: unit price snapshotted from the product at movement time.
	UnitPriceCents *int64 `json:"unitPriceCents"`
	TotalCents     *int64 `json:"totalCents"`

	ClientID      *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`
	BuyerName     string     `json:"buyerName"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointmentId"`

	OccurredAt time.Time `gorm:"index;not null" json:"occurredAt"`

	CreatedAt time.Time `json:"-"`
}

func (m *ProductMovement) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
