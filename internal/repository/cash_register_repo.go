package repository

import (
	"context"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashRegisterRepository interface {
	Create(ctx context.Context, r *model.CashRegister) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashRegister, error)
	// ListActive returns active registers with their OPEN session (if any) preloaded.
	ListActive(ctx context.Context) ([]model.CashRegister, error)
	// LockByIDTx reads the register row with SELECT … FOR UPDATE. Opening a
	// session and deactivating the register both take this lock.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashRegister, error)
	DeactivateTx(tx *gorm.DB, id uuid.UUID) error
}

type cashRegisterRepo struct{ db *gorm.DB }

func NewCashRegisterRepository(db *gorm.DB) CashRegisterRepository {
	return &cashRegisterRepo{db: db}
}

func (r *cashRegisterRepo) Create(ctx context.Context, reg *model.CashRegister) error {
	return translate(r.db.WithContext(ctx).Create(reg).Error, "create cash register")
}

func (r *cashRegisterRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashRegister, error) {
	var reg model.CashRegister
	err := r.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find cash register")
	}
	return &reg, nil
}

func (r *cashRegisterRepo) ListActive(ctx context.Context) ([]model.CashRegister, error) {
	var regs []model.CashRegister
	err := r.db.WithContext(ctx).
		Where("active = true").
		Preload("Sessions", "status = ?", model.SessionOpen).
		Preload("Sessions.OpenedByUser").
		Order("name ASC").
		Find(&regs).Error
	return regs, translate(err, "list cash registers")
}

func (r *cashRegisterRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.CashRegister, error) {
	var reg model.CashRegister
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reg, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "lock cash register")
	}
	return &reg, nil
}

func (r *cashRegisterRepo) DeactivateTx(tx *gorm.DB, id uuid.UUID) error {
	res := tx.Model(&model.CashRegister{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return translate(res.Error, "deactivate cash register")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
