package models

import (
	"time"

	"github.com/google/uuid"
)

// WhatsAppConnection mirrors the messaging provider's connection state for
// a business. Written by the provider integration, read-only here.
type WhatsAppConnection struct {
	BusinessID uuid.UUID `gorm:"type:uuid;primary_key" json:"businessId"`

	Status        string     `gorm:"type:varchar(20);not null;default:'disconnected'" json:"status"`
	PhoneNumber   string     `json:"phoneNumber"`
	PhoneNumberID string     `json:"phoneNumberId"`
	WabaID        string     `json:"wabaId"`
	ConnectedAt   *time.Time `json:"connectedAt"`

	UpdatedAt time.Time `json:"updatedAt"`
}
