package repository

import (
	"context"
	"errors"
	"time"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OpenSessionConstraint is the partial unique index that allows a single
// OPEN session per register. Created in infra.applySchemaPatches.
const OpenSessionConstraint = "uq_cash_sessions_open_register"

// ErrOpenSessionExists is returned when inserting a second OPEN session for a register.
var ErrOpenSessionExists = errors.New("register already has an open session")

type CashSessionRepository interface {
	CreateSessionTx(tx *gorm.DB, s *model.CashSession) error
	FindOpenByRegisterTx(tx *gorm.DB, registerID uuid.UUID) (*model.CashSession, error)
	// LockByIDTx reads the session row with SELECT … FOR UPDATE.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashSession, error)
	// CloseTx seals an OPEN session; ErrConditionFailed if it was not OPEN anymore.
	CloseTx(tx *gorm.DB, s *model.CashSession) error
	// AddSaleTotalsTx bumps totalSales and the payment-method bucket of an OPEN session.
	AddSaleTotalsTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, paymentMethod string) error
	SalesForSettlementTx(tx *gorm.DB, sessionID uuid.UUID) ([]model.Sale, error)
	MovementsForSettlementTx(tx *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	// FindHeader loads the session row alone, without relations.
	FindHeader(ctx context.Context, id uuid.UUID) (*model.CashSession, error)
	FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.CashSession, error)
	List(ctx context.Context) ([]model.CashSession, error)

	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error
	FindMovementByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error)
	ListMovements(ctx context.Context, sessionID *uuid.UUID) ([]model.CashMovement, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type cashSessionRepo struct{ db *gorm.DB }

func NewCashSessionRepository(db *gorm.DB) CashSessionRepository { return &cashSessionRepo{db: db} }

func (r *cashSessionRepo) DB() *gorm.DB { return r.db }

func (r *cashSessionRepo) CreateSessionTx(tx *gorm.DB, s *model.CashSession) error {
	err := tx.Create(s).Error
	if constraint, ok := uniqueConstraint(err); ok && constraint == OpenSessionConstraint {
		return ErrOpenSessionExists
	}
	return translate(err, "create cash session")
}

func (r *cashSessionRepo) FindOpenByRegisterTx(tx *gorm.DB, registerID uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.Where("cash_register_id = ? AND status = ?", registerID, model.SessionOpen).First(&s).Error
	if err != nil {
		return nil, translate(err, "find open session")
	}
	return &s, nil
}

func (r *cashSessionRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "lock cash session")
	}
	return &s, nil
}

func (r *cashSessionRepo) CloseTx(tx *gorm.DB, s *model.CashSession) error {
	res := tx.Model(&model.CashSession{}).
		Where("id = ? AND status = ?", s.ID, model.SessionOpen).
		Updates(map[string]interface{}{
			"status":        model.SessionClosed,
			"closed_at":     s.ClosedAt,
			"closed_by":     s.ClosedBy,
			"actual_cash":   s.ActualCash,
			"expected_cash": s.ExpectedCash,
			"difference":    s.Difference,
		})
	if res.Error != nil {
		return translate(res.Error, "close cash session")
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (r *cashSessionRepo) AddSaleTotalsTx(tx *gorm.DB, id uuid.UUID, total decimal.Decimal, paymentMethod string) error {
	updates := map[string]interface{}{
		"total_sales": gorm.Expr("total_sales + ?", total),
	}
	switch paymentMethod {
	case model.PaymentCash:
		updates["total_cash"] = gorm.Expr("total_cash + ?", total)
	case model.PaymentCard:
		updates["total_card"] = gorm.Expr("total_card + ?", total)
	case model.PaymentTransfer:
		updates["total_transfer"] = gorm.Expr("total_transfer + ?", total)
	}
	res := tx.Model(&model.CashSession{}).
		Where("id = ? AND status = ?", id, model.SessionOpen).
		Updates(updates)
	if res.Error != nil {
		return translate(res.Error, "update session totals")
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

func (r *cashSessionRepo) SalesForSettlementTx(tx *gorm.DB, sessionID uuid.UUID) ([]model.Sale, error) {
	var sales []model.Sale
	err := tx.Select("id", "total", "payment_method").Where("cash_session_id = ?", sessionID).Find(&sales).Error
	return sales, translate(err, "load session sales")
}

func (r *cashSessionRepo) MovementsForSettlementTx(tx *gorm.DB, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := tx.Where("cash_session_id = ?", sessionID).Find(&movs).Error
	return movs, translate(err, "load session movements")
}

// withSessionRelations preloads what the session endpoints return.
func withSessionRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("CashRegister").
		Preload("OpenedByUser").
		Preload("ClosedByUser").
		Preload("Sales", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "sale_number", "cash_session_id", "total", "payment_method", "created_at").Order("created_at ASC")
		}).
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

func (r *cashSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	err := withSessionRelations(r.db.WithContext(ctx)).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find cash session")
	}
	return &s, nil
}

func (r *cashSessionRepo) FindHeader(ctx context.Context, id uuid.UUID) (*model.CashSession, error) {
	var s model.CashSession
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find cash session")
	}
	return &s, nil
}

func (r *cashSessionRepo) FindOpenByRegister(ctx context.Context, registerID uuid.UUID) (*model.CashSession, error) {
	return r.FindOpenByRegisterTx(r.db.WithContext(ctx), registerID)
}

func (r *cashSessionRepo) List(ctx context.Context) ([]model.CashSession, error) {
	var sessions []model.CashSession
	err := withSessionRelations(r.db.WithContext(ctx)).Order("opened_at DESC").Find(&sessions).Error
	return sessions, translate(err, "list cash sessions")
}

func (r *cashSessionRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return translate(tx.Create(m).Error, "create cash movement")
}

func (r *cashSessionRepo) FindMovementByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error) {
	var m model.CashMovement
	err := r.db.WithContext(ctx).
		Preload("CashSession.CashRegister").
		Preload("Performer").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find cash movement")
	}
	return &m, nil
}

func (r *cashSessionRepo) ListMovements(ctx context.Context, sessionID *uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	q := r.db.WithContext(ctx).Preload("CashSession.CashRegister").Preload("Performer")
	if sessionID != nil {
		q = q.Where("cash_session_id = ?", *sessionID)
	}
	err := q.Order("created_at DESC").Find(&movs).Error
	return movs, translate(err, "list cash movements")
}
