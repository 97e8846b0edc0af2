package service_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory repositories ────────────────────────────────────────────────────
// Every stub returns nil from DB(), so services run their tx bodies with a nil
// *gorm.DB and the stubs ignore it.

type stubRegisterRepo struct {
	regs map[uuid.UUID]*model.CashRegister
}

func newStubRegisterRepo() *stubRegisterRepo {
	return &stubRegisterRepo{regs: make(map[uuid.UUID]*model.CashRegister)}
}

func (r *stubRegisterRepo) add(name string, active bool) *model.CashRegister {
	reg := &model.CashRegister{ID: uuid.New(), Name: name, Location: "Recepción", Active: active}
	r.regs[reg.ID] = reg
	return reg
}

func (r *stubRegisterRepo) Create(_ context.Context, reg *model.CashRegister) error {
	if reg.ID == uuid.Nil {
		reg.ID = uuid.New()
	}
	r.regs[reg.ID] = reg
	return nil
}

func (r *stubRegisterRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CashRegister, error) {
	reg, ok := r.regs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return reg, nil
}

func (r *stubRegisterRepo) ListActive(_ context.Context) ([]model.CashRegister, error) {
	var out []model.CashRegister
	for _, reg := range r.regs {
		if reg.Active {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRegisterRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.CashRegister, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubRegisterRepo) DeactivateTx(_ *gorm.DB, id uuid.UUID) error {
	reg, ok := r.regs[id]
	if !ok {
		return repository.ErrNotFound
	}
	reg.Active = false
	return nil
}

var _ repository.CashRegisterRepository = (*stubRegisterRepo)(nil)

type stubSessionRepo struct {
	sessions  map[uuid.UUID]*model.CashSession
	movements []model.CashMovement
	sales     *stubSaleRepo
}

func newStubSessionRepo(sales *stubSaleRepo) *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*model.CashSession), sales: sales}
}

func (r *stubSessionRepo) DB() *gorm.DB { return nil }

func (r *stubSessionRepo) CreateSessionTx(_ *gorm.DB, s *model.CashSession) error {
	for _, existing := range r.sessions {
		if existing.CashRegisterID == s.CashRegisterID && existing.IsOpen() {
			return repository.ErrOpenSessionExists
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *stubSessionRepo) FindOpenByRegisterTx(_ *gorm.DB, registerID uuid.UUID) (*model.CashSession, error) {
	for _, s := range r.sessions {
		if s.CashRegisterID == registerID && s.IsOpen() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubSessionRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	return r.FindHeader(context.Background(), id)
}

func (r *stubSessionRepo) CloseTx(_ *gorm.DB, s *model.CashSession) error {
	stored, ok := r.sessions[s.ID]
	if !ok || !stored.IsOpen() {
		return repository.ErrConditionFailed
	}
	stored.Status = model.SessionClosed
	stored.ClosedAt = s.ClosedAt
	stored.ClosedBy = s.ClosedBy
	stored.ActualCash = s.ActualCash
	stored.ExpectedCash = s.ExpectedCash
	stored.Difference = s.Difference
	return nil
}

func (r *stubSessionRepo) AddSaleTotalsTx(_ *gorm.DB, id uuid.UUID, total decimal.Decimal, method string) error {
	s, ok := r.sessions[id]
	if !ok || !s.IsOpen() {
		return repository.ErrConditionFailed
	}
	s.TotalSales = s.TotalSales.Add(total)
	switch method {
	case model.PaymentCash:
		s.TotalCash = s.TotalCash.Add(total)
	case model.PaymentCard:
		s.TotalCard = s.TotalCard.Add(total)
	case model.PaymentTransfer:
		s.TotalTransfer = s.TotalTransfer.Add(total)
	}
	return nil
}

func (r *stubSessionRepo) SalesForSettlementTx(_ *gorm.DB, sessionID uuid.UUID) ([]model.Sale, error) {
	return r.sales.bySession(sessionID), nil
}

func (r *stubSessionRepo) MovementsForSettlementTx(_ *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for _, m := range r.movements {
		if m.CashSessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, err := r.FindHeader(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Sales = r.sales.bySession(id)
	s.Movements, _ = r.MovementsForSettlementTx(nil, id)
	return s, nil
}

func (r *stubSessionRepo) FindHeader(_ context.Context, id uuid.UUID) (*model.CashSession, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubSessionRepo) FindOpenByRegister(_ context.Context, registerID uuid.UUID) (*model.CashSession, error) {
	return r.FindOpenByRegisterTx(nil, registerID)
}

func (r *stubSessionRepo) List(_ context.Context) ([]model.CashSession, error) {
	var out []model.CashSession
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OpenedAt.After(out[j].OpenedAt) })
	return out, nil
}

func (r *stubSessionRepo) CreateMovementTx(_ *gorm.DB, m *model.CashMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubSessionRepo) FindMovementByID(_ context.Context, id uuid.UUID) (*model.CashMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubSessionRepo) ListMovements(_ context.Context, sessionID *uuid.UUID) ([]model.CashMovement, error) {
	var out []model.CashMovement
	for i := len(r.movements) - 1; i >= 0; i-- {
		if sessionID == nil || r.movements[i].CashSessionID == *sessionID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

var _ repository.CashSessionRepository = (*stubSessionRepo)(nil)

type stubSaleRepo struct {
	sales []*model.Sale
}

func (r *stubSaleRepo) bySession(sessionID uuid.UUID) []model.Sale {
	var out []model.Sale
	for _, s := range r.sales {
		if s.CashSessionID == sessionID {
			out = append(out, *s)
		}
	}
	return out
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	for i := range s.Items {
		s.Items[i].ID = uuid.New()
		s.Items[i].SaleID = s.ID
	}
	r.sales = append(r.sales, s)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for _, s := range r.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubSaleRepo) List(_ context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubReceiptRepo struct {
	receipts []*model.Receipt
	failNext error
}

func (r *stubReceiptRepo) DB() *gorm.DB { return nil }

func (r *stubReceiptRepo) CreateTx(_ *gorm.DB, rec *model.Receipt) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	for _, existing := range r.receipts {
		if existing.SaleID == rec.SaleID {
			return repository.ErrReceiptExists
		}
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.receipts = append(r.receipts, rec)
	return nil
}

func (r *stubReceiptRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.ID == id {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubReceiptRepo) FindBySaleID(_ context.Context, saleID uuid.UUID) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.SaleID == saleID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubReceiptRepo) List(_ context.Context) ([]model.Receipt, error) {
	out := make([]model.Receipt, 0, len(r.receipts))
	for _, rec := range r.receipts {
		out = append(out, *rec)
	}
	return out, nil
}

var _ repository.ReceiptRepository = (*stubReceiptRepo)(nil)

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(name string, price int64, stock int) *model.Product {
	p := &model.Product{ID: uuid.New(), Name: name, UnitType: "UNIT", UnitPrice: decimal.NewFromInt(price), CurrentStock: stock, Active: true}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductRepo) List(_ context.Context, includeInactive bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if includeInactive || p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) DecrementStockTx(_ *gorm.DB, id uuid.UUID, qty int) error {
	p, ok := r.products[id]
	if !ok || p.CurrentStock < qty {
		return repository.ErrConditionFailed
	}
	p.CurrentStock -= qty
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubServiceRepo struct {
	services map[uuid.UUID]*model.ServiceCatalog
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: make(map[uuid.UUID]*model.ServiceCatalog)}
}

func (r *stubServiceRepo) add(name string, price int64, active bool) *model.ServiceCatalog {
	s := &model.ServiceCatalog{ID: uuid.New(), Name: name, Price: decimal.NewFromInt(price), Active: active}
	r.services[s.ID] = s
	return s
}

func (r *stubServiceRepo) Create(_ context.Context, s *model.ServiceCatalog) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.services[s.ID] = s
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ServiceCatalog, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubServiceRepo) List(_ context.Context, includeInactive bool) ([]model.ServiceCatalog, error) {
	var out []model.ServiceCatalog
	for _, s := range r.services {
		if includeInactive || s.Active {
			out = append(out, *s)
		}
	}
	return out, nil
}

var _ repository.ServiceRepository = (*stubServiceRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(name string) *model.User {
	u := &model.User{ID: uuid.New(), Name: name, Email: name + "@vetclinic.com", Role: "RECEPTIONIST", Active: true}
	r.users[u.ID] = u
	return u
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *stubUserRepo) Upsert(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubOwnerRepo struct {
	owners map[uuid.UUID]*model.Owner
}

func (r *stubOwnerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Owner, error) {
	o, ok := r.owners[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return o, nil
}

var _ repository.OwnerRepository = (*stubOwnerRepo)(nil)

// stubSequenceRepo counts per prefix, like the document_sequences upsert.
type stubSequenceRepo struct {
	last map[string]int64
}

func (r *stubSequenceRepo) NextTx(_ *gorm.DB, prefix string) (int64, error) {
	r.last[prefix]++
	return r.last[prefix], nil
}

var _ repository.SequenceRepository = (*stubSequenceRepo)(nil)

type stubNotifier struct {
	enqueued []uuid.UUID
}

func (n *stubNotifier) EnqueueReceipt(_ context.Context, id uuid.UUID) error {
	n.enqueued = append(n.enqueued, id)
	return nil
}

var _ service.ReceiptNotifier = (*stubNotifier)(nil)

type stubRenderer struct{}

func (stubRenderer) Render(rec *model.Receipt) ([]byte, error) {
	return []byte("%PDF-" + rec.ReceiptNumber), nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

// fixedDay is the business day every test document is numbered under.
var fixedDay = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	registers *stubRegisterRepo
	sessions  *stubSessionRepo
	sales     *stubSaleRepo
	receipts  *stubReceiptRepo
	products  *stubProductRepo
	services  *stubServiceRepo
	users     *stubUserRepo
	owners    *stubOwnerRepo
	seq       *stubSequenceRepo
	notifier  *stubNotifier

	sessionSvc  service.CashSessionService
	movementSvc service.CashMovementService
	saleSvc     service.SaleService
	receiptSvc  service.ReceiptService
	registerSvc service.CashRegisterService
	catalogSvc  service.CatalogService

	operator *model.User
	register *model.CashRegister
}

func newFixture() *fixture {
	f := &fixture{
		registers: newStubRegisterRepo(),
		sales:     &stubSaleRepo{},
		receipts:  &stubReceiptRepo{},
		products:  newStubProductRepo(),
		services:  newStubServiceRepo(),
		users:     newStubUserRepo(),
		owners:    &stubOwnerRepo{owners: make(map[uuid.UUID]*model.Owner)},
		seq:       &stubSequenceRepo{last: make(map[string]int64)},
		notifier:  &stubNotifier{},
	}
	f.sessions = newStubSessionRepo(f.sales)

	numbers := service.NewNumbering(f.seq, time.UTC).WithClock(func() time.Time { return fixedDay })
	f.sessionSvc = service.NewCashSessionService(f.sessions, f.registers, f.users, numbers)
	f.movementSvc = service.NewCashMovementService(f.sessions, f.users, numbers)
	f.receiptSvc = service.NewReceiptService(f.receipts, f.sales, f.users, f.owners, numbers, stubRenderer{})
	f.saleSvc = service.NewSaleService(f.sales, f.sessions, f.products, f.services, f.users, f.owners, f.receiptSvc, numbers, f.notifier)
	f.registerSvc = service.NewCashRegisterService(f.registers, f.sessions)
	f.catalogSvc = service.NewCatalogService(f.products, f.services)

	f.operator = f.users.add("recepcion")
	f.register = f.registers.add("Caja Principal", true)
	return f
}

func (f *fixture) addOwner(email *string) *model.Owner {
	o := &model.Owner{ID: uuid.New(), Name: "Juan Pérez", IdentificationNumber: uuid.NewString()[:8], Email: email}
	f.owners.owners[o.ID] = o
	return o
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (f *fixture) openSession(t *testing.T, initial int64) *model.CashSession {
	t.Helper()
	s, err := f.sessionSvc.Open(context.Background(), dto.OpenCashSessionRequest{
		CashRegisterID: f.register.ID.String(),
		OpeningBalance: dec(initial),
		OpenedBy:       f.operator.ID.String(),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) productLine(p *model.Product, qty int) dto.SaleItemRequest {
	return dto.SaleItemRequest{Type: model.ItemProduct, ProductID: p.ID.String(), Quantity: qty}
}

func (f *fixture) saleRequest(session *model.CashSession, method string, items ...dto.SaleItemRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CashSessionID: session.ID.String(),
		Items:         items,
		PaymentMethod: method,
		SoldBy:        f.operator.ID.String(),
	}
}
