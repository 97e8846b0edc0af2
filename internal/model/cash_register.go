package model

import (
	"time"

	"github.com/google/uuid"
)

// CashRegister is a physical or logical till. Sessions are opened against it.
type CashRegister struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Location  string    `gorm:"not null" json:"location"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Sessions []CashSession `gorm:"foreignKey:CashRegisterID" json:"sessions,omitempty"`
}
