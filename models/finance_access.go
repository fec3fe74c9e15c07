package models

import (
	"time"

	"github.com/google/uuid"
)

// FinanceAccess gates the financial report behind a secondary password,
// separate from platform auth. Only the bcrypt hash is stored.
type FinanceAccess struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primary_key" json:"businessId"`

	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`

	UpdatedAt time.Time `json:"updatedAt"`
}
