package service

import (
	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/shopspring/decimal"
)

const (
	SettlementBalanced = "balanced"
	SettlementSurplus  = "surplus"
	SettlementShortage = "shortage"
)

// ExpectedBalance is initialCash plus every sale total plus every movement,
// IN counting positive and any other type negative.
//
// The opening IN movement written by Open is counted on top of initialCash,
// so the opening float appears twice. Existing closed sessions were settled
// with this formula and reports compare against them; keep it.
func ExpectedBalance(initialCash decimal.Decimal, sales []model.Sale, movements []model.CashMovement) decimal.Decimal {
	expected := initialCash
	for _, s := range sales {
		expected = expected.Add(s.Total)
	}
	for _, m := range movements {
		expected = expected.Add(m.SignedAmount())
	}
	return expected
}

// ClassifyDifference labels actual − expected.
func ClassifyDifference(diff decimal.Decimal) string {
	switch diff.Sign() {
	case 0:
		return SettlementBalanced
	case 1:
		return SettlementSurplus
	default:
		return SettlementShortage
	}
}
