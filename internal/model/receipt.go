package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPending = "PENDING"
)

// Receipt is a denormalized snapshot of a Sale for printing. One per sale, never updated.
type Receipt struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ReceiptNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"receiptNumber"`
	SaleID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"saleId"`
	PetID          *uuid.UUID      `gorm:"type:uuid" json:"petId"`
	OwnerID        *uuid.UUID      `gorm:"type:uuid;index" json:"ownerId"`
	VeterinarianID *uuid.UUID      `gorm:"type:uuid" json:"veterinarianId"`
	IssueDate      time.Time       `gorm:"not null" json:"issueDate"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	PaymentMethod  string          `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	PaymentStatus  string          `gorm:"type:varchar(10);not null" json:"paymentStatus"`
	Notes          *string         `json:"notes"`
	CreatedBy      uuid.UUID       `gorm:"type:uuid;not null" json:"createdBy"`
	CreatedAt      time.Time       `json:"createdAt"`

	Sale         *Sale  `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Owner        *Owner `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Veterinarian *User  `gorm:"foreignKey:VeterinarianID" json:"veterinarian,omitempty"`
	Creator      *User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
