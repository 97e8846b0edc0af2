package service_test

import (
	"context"
	"testing"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

// Two lines at 10.005 would be stored as 10.01 each while the sale total
// said 20.01. Sub-cent prices never reach the database.
func TestSale_Create_RejectsSubCentPrice(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 0)
	p := f.products.add("Suero oral", 10, 50)

	line := dto.SaleItemRequest{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 1, UnitPrice: moneyPtr("10.005")}
	_, err := f.saleSvc.Create(context.Background(), f.saleRequest(s, model.PaymentCash, line, line))

	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 50, f.products.products[p.ID].CurrentStock)
	assert.True(t, f.sessions.sessions[s.ID].TotalSales.IsZero())
}

func TestSale_Create_AcceptsTrailingZeros(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 0)
	p := f.products.add("Suero oral", 10, 50)

	line := dto.SaleItemRequest{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 2, UnitPrice: moneyPtr("10.500")}
	sale, err := f.saleSvc.Create(context.Background(), f.saleRequest(s, model.PaymentCash, line))

	require.NoError(t, err)
	assert.Equal(t, "21.00", sale.Total.StringFixed(2))
}

func TestSale_Create_RejectsOverflowingTotals(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 0)
	p := f.products.add("Equipo de rayos X", 10, 50)

	cases := []struct {
		name  string
		items []dto.SaleItemRequest
	}{
		{"price beyond column", []dto.SaleItemRequest{
			{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 1, UnitPrice: moneyPtr("10000000000")},
		}},
		{"line total beyond column", []dto.SaleItemRequest{
			{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 2, UnitPrice: moneyPtr("9999999999.99")},
		}},
		{"sale total beyond column", []dto.SaleItemRequest{
			{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 1, UnitPrice: moneyPtr("6000000000")},
			{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: 1, UnitPrice: moneyPtr("6000000000")},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.saleSvc.Create(context.Background(), f.saleRequest(s, model.PaymentCash, tc.items...))
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.sales.sales)
	assert.Equal(t, 50, f.products.products[p.ID].CurrentStock)
}

func TestCashMovement_Create_RejectsUnstorableAmounts(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 0)

	for _, amount := range []string{"0.001", "12.345", "10000000000"} {
		t.Run(amount, func(t *testing.T) {
			_, err := f.movementSvc.Create(context.Background(), dto.CreateCashMovementRequest{
				SessionID: s.ID.String(), MovementType: model.MovementIn, Amount: money(amount),
				Reason: "Fondo de cambio", PerformedBy: f.operator.ID.String(),
			})
			assert.ErrorIs(t, err, service.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.sessions.movements)
}

func TestCashSession_RejectsSubCentBalances(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.sessionSvc.Open(ctx, dto.OpenCashSessionRequest{
		CashRegisterID: f.register.ID.String(),
		OpeningBalance: money("50000.001"),
		OpenedBy:       f.operator.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Empty(t, f.sessions.sessions)

	s := f.openSession(t, 50000)
	_, err = f.sessionSvc.Close(ctx, dto.CloseCashSessionRequest{
		SessionID:    s.ID.String(),
		FinalBalance: money("60000.999"),
		ClosedBy:     f.operator.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, model.SessionOpen, f.sessions.sessions[s.ID].Status)
}

func TestCatalog_RejectsSubCentPrices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Collar", UnitPrice: money("1.234")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = f.catalogSvc.CreateService(ctx, dto.CreateServiceRequest{Name: "Consulta", Price: money("25000.005")})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
