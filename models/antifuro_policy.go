package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PolicyNone              = "none"
	PolicyFixedDeposit      = "fixed_deposit"
	PolicyPercentageDeposit = "percentage_deposit"
	PolicyConfirmationOnly  = "confirmation_only"
)

// AntifuroPolicy is the per-business no-show policy: what kind of deposit
// (if any) a booking requires, and how far ahead confirmation reminders go
// out.
type AntifuroPolicy struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primary_key" json:"businessId"`

	PolicyType        string   `gorm:"type:varchar(30);not null;default:'none'" json:"policyType"`
	DepositValueCents *int64   `json:"depositValueCents"`
	DepositPercentage *float64 `json:"depositPercentage"`
	ConfirmationHours *int     `json:"confirmationHours"`
	ReminderHours     *int     `json:"reminderHours"`

	UpdatedAt time.Time `json:"updatedAt"`
}
