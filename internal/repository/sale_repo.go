package repository

import (
	"context"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// CreateTx inserts the sale together with its items.
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return translate(tx.Create(s).Error, "create sale")
}

func withSaleRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Service").
		Preload("Owner").
		Preload("Seller").
		Preload("CashSession.CashRegister").
		Preload("Receipt")
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := withSaleRelations(r.db.WithContext(ctx)).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find sale")
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := withSaleRelations(r.db.WithContext(ctx)).Order("created_at DESC").Find(&sales).Error
	return sales, translate(err, "list sales")
}
