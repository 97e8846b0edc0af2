package dto

import "github.com/shopspring/decimal"

// SaleItemRequest is one line of POST /sales. Exactly one of ProductID/ServiceID
// is used, selected by Type; the service layer enforces which one.
// UnitPrice overrides the catalog price when non-zero.
type SaleItemRequest struct {
	Type      string           `json:"type"      validate:"required,oneof=PRODUCT SERVICE"`
	ProductID string           `json:"productId" validate:"omitempty,uuid"`
	ServiceID string           `json:"serviceId" validate:"omitempty,uuid"`
	Quantity  int              `json:"quantity"  validate:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type CreateSaleRequest struct {
	CashSessionID string            `json:"cashSessionId" validate:"required,uuid"`
	OwnerID       *string           `json:"ownerId"       validate:"omitempty,uuid"`
	Items         []SaleItemRequest `json:"items"         validate:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" validate:"omitempty,oneof=CASH CARD TRANSFER CREDIT"`
	Notes         *string           `json:"notes"`
	SoldBy        string            `json:"soldBy"        validate:"required,uuid"`
}
