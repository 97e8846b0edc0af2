package dto

import (
	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCashRegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Location string `json:"location" validate:"required"`
}

// CashSessionActionRequest is the body of POST /cash-sessions. Action selects
// which of the two embedded shapes applies; the rest of the fields are ignored.
type CashSessionActionRequest struct {
	Action string `json:"action"`

	CashRegisterID string          `json:"cashRegisterId"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	OpenedBy       string          `json:"openedBy"`

	SessionID    string          `json:"sessionId"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
	ClosedBy     string          `json:"closedBy"`
}

type OpenCashSessionRequest struct {
	CashRegisterID string          `json:"cashRegisterId" validate:"required,uuid"`
	OpeningBalance decimal.Decimal `json:"openingBalance" validate:"min=0"`
	OpenedBy       string          `json:"openedBy"       validate:"required,uuid"`
}

type CloseCashSessionRequest struct {
	SessionID    string          `json:"sessionId"    validate:"required,uuid"`
	FinalBalance decimal.Decimal `json:"finalBalance" validate:"min=0"`
	ClosedBy     string          `json:"closedBy"     validate:"required,uuid"`
}

func (r CashSessionActionRequest) Open() OpenCashSessionRequest {
	return OpenCashSessionRequest{
		CashRegisterID: r.CashRegisterID,
		OpeningBalance: r.OpeningBalance,
		OpenedBy:       r.OpenedBy,
	}
}

func (r CashSessionActionRequest) Close() CloseCashSessionRequest {
	return CloseCashSessionRequest{
		SessionID:    r.SessionID,
		FinalBalance: r.FinalBalance,
		ClosedBy:     r.ClosedBy,
	}
}

type CreateCashMovementRequest struct {
	SessionID    string          `json:"sessionId"    validate:"required,uuid"`
	MovementType string          `json:"movementType" validate:"required,oneof=IN OUT ADJUSTMENT EXPIRED LOST"`
	Amount       decimal.Decimal `json:"amount"       validate:"required,gt=0"`
	Reason       string          `json:"reason"       validate:"required"`
	PerformedBy  string          `json:"performedBy"  validate:"required,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Settlement is the outcome of closing a session. Status is "balanced", "surplus" or "shortage".
type Settlement struct {
	ExpectedBalance decimal.Decimal `json:"expectedBalance"`
	ActualBalance   decimal.Decimal `json:"actualBalance"`
	Difference      decimal.Decimal `json:"difference"`
	Status          string          `json:"status"`
}

// CloseCashSessionResponse is the closed session plus its settlement breakdown.
type CloseCashSessionResponse struct {
	*model.CashSession
	Settlement Settlement `json:"settlement"`
}

// CashSessionDetail adds the live expected balance to an OPEN session.
type CashSessionDetail struct {
	*model.CashSession
	CurrentExpectedBalance *decimal.Decimal `json:"currentExpectedBalance,omitempty"`
}
