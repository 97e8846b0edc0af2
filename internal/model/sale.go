package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
	PaymentCredit   = "CREDIT"
)

const (
	ItemProduct = "PRODUCT"
	ItemService = "SERVICE"
)

// Sale is an immutable record of product/service lines sold during a cash session.
// Discount and Tax are stored for the receipt layout and are always zero today.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleNumber    string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"saleNumber"`
	CashSessionID uuid.UUID       `gorm:"type:uuid;index;not null" json:"cashSessionId"`
	OwnerID       *uuid.UUID      `gorm:"type:uuid;index" json:"ownerId"`
	SoldBy        uuid.UUID       `gorm:"type:uuid;not null" json:"soldBy"`
	PaymentMethod string          `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	Tax           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Notes         *string         `json:"notes"`
	CreatedAt     time.Time       `json:"createdAt"`

	Items       []SaleItem   `gorm:"foreignKey:SaleID" json:"items,omitempty"`
	CashSession *CashSession `gorm:"foreignKey:CashSessionID" json:"cashSession,omitempty"`
	Owner       *Owner       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Seller      *User        `gorm:"foreignKey:SoldBy" json:"seller,omitempty"`
	Receipt     *Receipt     `gorm:"foreignKey:SaleID" json:"receipt,omitempty"`
}

// SaleItem is one priced line. Description keeps the catalog name at time of sale.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"saleId"`
	ItemType    string          `gorm:"type:varchar(10);not null" json:"itemType"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index" json:"productId"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid;index" json:"serviceId"`
	Description string          `gorm:"not null" json:"description"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Service *ServiceCatalog `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}
