package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceExecution is the immutable ledger row written exactly once when an
// appointment is marked done. ServicePriceCents is a frozen copy of the
// service's price at that moment; later price edits never touch it.
type ServiceExecution struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	ClientID       uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index;not null" json:"professionalId"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	// Unique so the same appointment can never yield a second execution.
	AppointmentID *uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"appointmentId"`

	ServicePriceCents int64     `gorm:"not null" json:"servicePriceCents"`
	PerformedAt       time.Time `gorm:"index;not null" json:"performedAt"`

	CreatedAt time.Time `json:"-"`
}

func (e *ServiceExecution) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
