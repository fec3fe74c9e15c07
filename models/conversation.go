package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Conversation groups the WhatsApp message log per client. Inbound rows are
// written by the external messaging integration; this core appends outbound
// confirmation messages and otherwise reads.
type Conversation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`

	ClientID      *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`
	Status        string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	LastMessageAt *time.Time `json:"lastMessageAt"`

	Messages []Message `gorm:"foreignKey:ConversationID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID     uuid.UUID `gorm:"type:uuid;index;not null" json:"businessId"`
	ConversationID uuid.UUID `gorm:"type:uuid;index;not null" json:"conversationId"`

	Direction string `gorm:"type:varchar(10);not null" json:"direction"`
	Body      string `gorm:"type:text;not null" json:"body"`
	FromPhone string `json:"fromPhone"`
	ToPhone   string `json:"toPhone"`

	ProviderMessageID string `json:"providerMessageId"`
	Status            string `gorm:"type:varchar(20)" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
