package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked inventory item. CurrentStock is only ever decremented
// by sales through a conditional update (see repository.ProductRepository).
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"index;not null" json:"name"`
	Category     *string         `json:"category"`
	UnitType     string          `gorm:"not null;default:'UNIT'" json:"unitType"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	CurrentStock int             `gorm:"not null;default:0;check:current_stock >= 0" json:"currentStock"`
	MinStock     int             `gorm:"not null;default:0" json:"minStock"`
	Active       bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ServiceCatalog lists billable clinic services (consults, vaccines, grooming…).
type ServiceCatalog struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TableName keeps the plural consistent with the rest of the schema.
func (ServiceCatalog) TableName() string { return "service_catalog" }
