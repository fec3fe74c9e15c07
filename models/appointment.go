package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled = "scheduled"
	StatusConfirmed = "confirmed"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// Legal forward transitions of the appointment lifecycle. Cancellation is
// allowed from any non-terminal state; done and cancelled are terminal.
var appointmentTransitions = map[string][]string{
	StatusScheduled: {StatusConfirmed, StatusDone, StatusCancelled},
	StatusConfirmed: {StatusDone, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range appointmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	ClientID       uuid.UUID `gorm:"type:uuid;index;not null" json:"clientId"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;index:idx_professional_start;not null" json:"professionalId"`
	ServiceID      uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`

	StartsAt time.Time `gorm:"index:idx_professional_start;not null" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`
	Status   string    `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Notes    string    `json:"notes"`

	// Set once the confirmation notifier has messaged the client.
	ConfirmationSentAt *time.Time `json:"confirmationSentAt"`

	gorm.Model `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
