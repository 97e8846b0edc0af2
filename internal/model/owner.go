package model

import (
	"time"

	"github.com/google/uuid"
)

// Owner is a pet owner (client). Managed elsewhere; sales and receipts only reference it.
type Owner struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name                 string    `gorm:"not null" json:"name"`
	IdentificationNumber string    `gorm:"uniqueIndex;not null" json:"identificationNumber"`
	Phone                *string   `json:"phone,omitempty"`
	Email                *string   `json:"email,omitempty"`
	CreatedAt            time.Time `json:"-"`
	UpdatedAt            time.Time `json:"-"`
}
