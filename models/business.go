package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VerticalBarbershop = "barbershop"
	VerticalSalon      = "salon"
)

type Business struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Vertical string    `gorm:"type:varchar(20);not null;default:'barbershop'" json:"vertical"`

	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningTime string `gorm:"type:varchar(5)" json:"openingTime"` // "09:00"
	ClosingTime string `gorm:"type:varchar(5)" json:"closingTime"` // "20:00"

	Users         []User         `gorm:"foreignKey:BusinessID" json:"-"`
	Professionals []Professional `gorm:"foreignKey:BusinessID" json:"-"`
	Clients       []Client       `gorm:"foreignKey:BusinessID" json:"-"`
	Services      []Service      `gorm:"foreignKey:BusinessID" json:"-"`
	Products      []Product      `gorm:"foreignKey:BusinessID" json:"-"`

	gorm.Model `json:"-"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
