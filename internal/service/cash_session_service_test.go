package service_test

import (
	"context"
	"testing"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashSession_Open_RecordsOpeningMovement(t *testing.T) {
	f := newFixture()

	s := f.openSession(t, 50000)

	assert.Equal(t, "CSH20261015001", s.SessionNumber)
	assert.Equal(t, model.SessionOpen, s.Status)
	assert.True(t, s.InitialCash.Equal(dec(50000)))
	require.NotNil(t, s.CashRegister)
	assert.Equal(t, "Caja Principal", s.CashRegister.Name)

	movs, err := f.movementSvc.List(context.Background(), &s.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovementIn, movs[0].MovementType)
	assert.True(t, movs[0].Amount.Equal(dec(50000)))
	assert.Equal(t, "Apertura de caja", movs[0].Reason)
}

func TestCashSession_Open_ZeroBalanceHasNoMovement(t *testing.T) {
	f := newFixture()

	s := f.openSession(t, 0)

	movs, err := f.movementSvc.List(context.Background(), &s.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCashSession_Open_SecondOpenOnSameRegisterFails(t *testing.T) {
	f := newFixture()
	f.openSession(t, 10000)

	_, err := f.sessionSvc.Open(context.Background(), dto.OpenCashSessionRequest{
		CashRegisterID: f.register.ID.String(),
		OpeningBalance: dec(5000),
		OpenedBy:       f.operator.ID.String(),
	})

	assert.ErrorIs(t, err, service.ErrSessionAlreadyOpen)
	open := 0
	for _, s := range f.sessions.sessions {
		if s.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestCashSession_Open_OtherRegisterIsIndependent(t *testing.T) {
	f := newFixture()
	f.openSession(t, 10000)
	other := f.registers.add("Caja Farmacia", true)

	s, err := f.sessionSvc.Open(context.Background(), dto.OpenCashSessionRequest{
		CashRegisterID: other.ID.String(),
		OpeningBalance: dec(0),
		OpenedBy:       f.operator.ID.String(),
	})

	require.NoError(t, err)
	assert.Equal(t, "CSH20261015002", s.SessionNumber)
}

func TestCashSession_Open_Rejections(t *testing.T) {
	f := newFixture()
	inactive := f.registers.add("Caja Vieja", false)

	cases := []struct {
		name string
		req  dto.OpenCashSessionRequest
		want error
	}{
		{"unknown register", dto.OpenCashSessionRequest{CashRegisterID: uuid.NewString(), OpenedBy: f.operator.ID.String()}, service.ErrRegisterNotFound},
		{"inactive register", dto.OpenCashSessionRequest{CashRegisterID: inactive.ID.String(), OpenedBy: f.operator.ID.String()}, service.ErrRegisterInactive},
		{"unknown operator", dto.OpenCashSessionRequest{CashRegisterID: f.register.ID.String(), OpenedBy: uuid.NewString()}, service.ErrOperatorNotFound},
		{"malformed id", dto.OpenCashSessionRequest{CashRegisterID: "caja-1", OpenedBy: f.operator.ID.String()}, service.ErrInvalidInput},
		{"negative balance", dto.OpenCashSessionRequest{CashRegisterID: f.register.ID.String(), OpeningBalance: dec(-1), OpenedBy: f.operator.ID.String()}, service.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.sessionSvc.Open(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, f.sessions.sessions)
	assert.Zero(t, f.seq.last["CSH20261015"])
}

// Settlement counts the opening float twice: once as initialCash and once as
// the IN movement written on open.
func TestCashSession_Close_SettlesWithDocumentedFormula(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.openSession(t, 50000)
	p := f.products.add("Amoxicilina 250mg", 1500, 100)

	_, err := f.saleSvc.Create(ctx, f.saleRequest(s, model.PaymentCash, f.productLine(p, 10)))
	require.NoError(t, err)
	_, err = f.movementSvc.Create(ctx, dto.CreateCashMovementRequest{
		SessionID:    s.ID.String(),
		MovementType: model.MovementOut,
		Amount:       dec(5000),
		Reason:       "Compra de insumos",
		PerformedBy:  f.operator.ID.String(),
	})
	require.NoError(t, err)

	res, err := f.sessionSvc.Close(ctx, dto.CloseCashSessionRequest{
		SessionID:    s.ID.String(),
		FinalBalance: dec(60000),
		ClosedBy:     f.operator.ID.String(),
	})

	require.NoError(t, err)
	assert.True(t, res.Settlement.ExpectedBalance.Equal(dec(110000)), res.Settlement.ExpectedBalance.String())
	assert.True(t, res.Settlement.Difference.Equal(dec(-50000)), res.Settlement.Difference.String())
	assert.Equal(t, service.SettlementShortage, res.Settlement.Status)
	assert.Equal(t, model.SessionClosed, res.Status)
	require.NotNil(t, res.ClosedAt)
	require.NotNil(t, res.ClosedBy)
	assert.Equal(t, f.operator.ID, *res.ClosedBy)
	require.NotNil(t, res.ExpectedCash)
	assert.True(t, res.ExpectedCash.Equal(dec(110000)))
}

func TestCashSession_Close_Twice(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 0)
	req := dto.CloseCashSessionRequest{SessionID: s.ID.String(), FinalBalance: dec(0), ClosedBy: f.operator.ID.String()}

	res, err := f.sessionSvc.Close(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, service.SettlementBalanced, res.Settlement.Status)

	_, err = f.sessionSvc.Close(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrSessionNotOpen)
}

func TestCashSession_Close_UnknownSession(t *testing.T) {
	f := newFixture()

	_, err := f.sessionSvc.Close(context.Background(), dto.CloseCashSessionRequest{
		SessionID: uuid.NewString(), ClosedBy: f.operator.ID.String(),
	})

	assert.ErrorIs(t, err, service.ErrSessionNotFound)
	assert.True(t, service.IsNotFound(err))
}

func TestCashSession_ClosedSessionIsImmutable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.openSession(t, 20000)
	p := f.products.add("Vacuna Triple Canina", 25000, 5)
	_, err := f.sessionSvc.Close(ctx, dto.CloseCashSessionRequest{
		SessionID: s.ID.String(), FinalBalance: dec(40000), ClosedBy: f.operator.ID.String(),
	})
	require.NoError(t, err)
	before := *f.sessions.sessions[s.ID]

	_, err = f.saleSvc.Create(ctx, f.saleRequest(s, model.PaymentCash, f.productLine(p, 1)))
	assert.ErrorIs(t, err, service.ErrSessionNotOpen)

	_, err = f.movementSvc.Create(ctx, dto.CreateCashMovementRequest{
		SessionID: s.ID.String(), MovementType: model.MovementIn, Amount: dec(100),
		Reason: "Cambio", PerformedBy: f.operator.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrSessionNotOpen)

	after := f.sessions.sessions[s.ID]
	assert.True(t, before.TotalSales.Equal(after.TotalSales))
	assert.Equal(t, before.ClosedAt, after.ClosedAt)
	assert.Equal(t, 5, f.products.products[p.ID].CurrentStock)
	assert.Empty(t, f.sales.sales)
}

func TestCashSession_Get_LiveExpectedBalanceWhileOpen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.openSession(t, 10000)
	svc := f.services.add("Consulta general", 20000, true)
	_, err := f.saleSvc.Create(ctx, f.saleRequest(s, model.PaymentCard, dto.SaleItemRequest{
		Type: model.ItemService, ServiceID: svc.ID.String(), Quantity: 1,
	}))
	require.NoError(t, err)

	detail, err := f.sessionSvc.Get(ctx, s.ID)

	require.NoError(t, err)
	require.NotNil(t, detail.CurrentExpectedBalance)
	assert.True(t, detail.CurrentExpectedBalance.Equal(dec(40000)), detail.CurrentExpectedBalance.String())
}

func TestCashSession_ExportReport(t *testing.T) {
	f := newFixture()
	s := f.openSession(t, 1000)

	data, name, err := f.sessionSvc.ExportReport(context.Background(), s.ID)

	require.NoError(t, err)
	assert.Equal(t, "CSH20261015001.xlsx", name)
	assert.NotEmpty(t, data)
}

func TestCashRegister_DeactivateWithOpenSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.openSession(t, 0)

	err := f.registerSvc.Deactivate(ctx, f.register.ID)
	assert.ErrorIs(t, err, service.ErrRegisterHasOpenSession)

	err = f.registerSvc.Deactivate(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrRegisterNotFound)
}

func TestCashRegister_DeactivateAfterCloseBlocksOpen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.openSession(t, 0)
	_, err := f.sessionSvc.Close(ctx, dto.CloseCashSessionRequest{
		SessionID: s.ID.String(), FinalBalance: dec(0), ClosedBy: f.operator.ID.String(),
	})
	require.NoError(t, err)

	require.NoError(t, f.registerSvc.Deactivate(ctx, f.register.ID))
	assert.False(t, f.registers.regs[f.register.ID].Active)

	_, err = f.sessionSvc.Open(ctx, dto.OpenCashSessionRequest{
		CashRegisterID: f.register.ID.String(), OpeningBalance: dec(0), OpenedBy: f.operator.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrRegisterInactive)
	assert.Equal(t, int64(1), f.seq.last["CSH20261015"], "rejected open must not take a number")
}

func TestCashRegister_CreateAndList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	reg, err := f.registerSvc.Create(ctx, dto.CreateCashRegisterRequest{Name: "  Caja Farmacia ", Location: "Farmacia"})
	require.NoError(t, err)
	assert.Equal(t, "Caja Farmacia", reg.Name)

	_, err = f.registerSvc.Create(ctx, dto.CreateCashRegisterRequest{Name: "   ", Location: "Farmacia"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	regs, err := f.registerSvc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}
