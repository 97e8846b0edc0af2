package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SessionOpen   = "OPEN"
	SessionClosed = "CLOSED"
)

// Movement types. IN adds to the drawer, every other type takes money out.
const (
	MovementIn         = "IN"
	MovementOut        = "OUT"
	MovementAdjustment = "ADJUSTMENT"
	MovementExpired    = "EXPIRED"
	MovementLost       = "LOST"
)

// CashSession represents one register being open for business.
// Only one OPEN row per register may exist (partial unique index, see infra/database.go).
type CashSession struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionNumber  string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"sessionNumber"`
	CashRegisterID uuid.UUID       `gorm:"type:uuid;index;not null" json:"cashRegisterId"`
	InitialCash    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"initialCash"`
	Status         string          `gorm:"type:varchar(10);not null;default:'OPEN'" json:"status"`
	OpenedBy       uuid.UUID       `gorm:"type:uuid;not null" json:"openedBy"`
	ClosedBy       *uuid.UUID      `gorm:"type:uuid" json:"closedBy"`
	OpenedAt       time.Time       `gorm:"not null" json:"openedAt"`
	ClosedAt       *time.Time      `json:"closedAt"`

	// Running totals, incremented by every sale while OPEN.
	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalSales"`
	TotalCash     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalCash"`
	TotalCard     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalCard"`
	TotalTransfer decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"totalTransfer"`

	// Populated on close only.
	ActualCash   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"actualCash"`
	ExpectedCash *decimal.Decimal `gorm:"type:decimal(12,2)" json:"expectedCash"`
	Difference   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"difference"`

	CashRegister *CashRegister  `gorm:"foreignKey:CashRegisterID" json:"cashRegister,omitempty"`
	OpenedByUser *User          `gorm:"foreignKey:OpenedBy" json:"openedByUser,omitempty"`
	ClosedByUser *User          `gorm:"foreignKey:ClosedBy" json:"closedByUser,omitempty"`
	Sales        []Sale         `gorm:"foreignKey:CashSessionID" json:"sales,omitempty"`
	Movements    []CashMovement `gorm:"foreignKey:CashSessionID" json:"cashMovements,omitempty"`
}

func (s *CashSession) IsOpen() bool { return s.Status == SessionOpen }

// CashMovement is a manual adjustment to a session's drawer.
// Amount is always positive; the sign comes from MovementType.
// Movements are never updated or deleted.
type CashMovement struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CashSessionID uuid.UUID       `gorm:"type:uuid;index;not null" json:"cashSessionId"`
	MovementType  string          `gorm:"type:varchar(12);not null" json:"movementType"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason        string          `gorm:"not null" json:"reason"`
	PerformedBy   uuid.UUID       `gorm:"type:uuid;not null" json:"performedBy"`
	CreatedAt     time.Time       `json:"createdAt"`

	CashSession *CashSession `gorm:"foreignKey:CashSessionID" json:"cashSession,omitempty"`
	Performer   *User        `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

// SignedAmount returns the movement's effect on the drawer balance.
func (m CashMovement) SignedAmount() decimal.Decimal {
	if m.MovementType == MovementIn {
		return m.Amount
	}
	return m.Amount.Neg()
}

// IsValidMovementType reports whether t is one of the known movement types.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment, MovementExpired, MovementLost:
		return true
	}
	return false
}
