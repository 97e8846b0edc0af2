package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Name         string          `json:"name"         validate:"required"`
	Category     *string         `json:"category"`
	UnitType     string          `json:"unitType"`
	UnitPrice    decimal.Decimal `json:"unitPrice"    validate:"min=0"`
	CurrentStock int             `json:"currentStock" validate:"min=0"`
	MinStock     int             `json:"minStock"     validate:"min=0"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name"        validate:"required"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Price       decimal.Decimal `json:"price"       validate:"required,gt=0"`
}
