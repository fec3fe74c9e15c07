package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription tracks the billing provider's plan for a platform user. Rows
// are written exclusively by the provider's webhook handlers; the core only
// reads status/plan for display gating.
type Subscription struct {
	UserID uuid.UUID `gorm:"type:uuid;primary_key" json:"userId"`

	PlanName           string     `json:"planName"`
	Status             string     `gorm:"type:varchar(20);not null;default:'inactive'" json:"status"`
	ProviderCustomerID string     `json:"-"`
	CurrentPeriodEnd   *time.Time `json:"currentPeriodEnd"`

	UpdatedAt time.Time `json:"updatedAt"`
}
