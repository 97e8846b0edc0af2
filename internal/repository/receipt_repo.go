package repository

import (
	"context"
	"errors"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// receiptSaleConstraint is the unique index gorm derives for Receipt.SaleID.
const receiptSaleConstraint = "idx_receipts_sale_id"

// ErrReceiptExists is returned when a second receipt is inserted for the same sale.
var ErrReceiptExists = errors.New("sale already has a receipt")

type ReceiptRepository interface {
	CreateTx(tx *gorm.DB, rec *model.Receipt) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	FindBySaleID(ctx context.Context, saleID uuid.UUID) (*model.Receipt, error)
	List(ctx context.Context) ([]model.Receipt, error)
	DB() *gorm.DB
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository { return &receiptRepo{db: db} }

func (r *receiptRepo) DB() *gorm.DB { return r.db }

func (r *receiptRepo) CreateTx(tx *gorm.DB, rec *model.Receipt) error {
	err := tx.Create(rec).Error
	if constraint, ok := uniqueConstraint(err); ok && constraint == receiptSaleConstraint {
		return ErrReceiptExists
	}
	return translate(err, "create receipt")
}

// FindByID loads the receipt with everything the PDF layout needs.
func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Sale.Items").
		Preload("Sale.Seller").
		Preload("Sale.CashSession.CashRegister").
		Preload("Owner").
		Preload("Veterinarian").
		Preload("Creator").
		First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find receipt")
	}
	return &rec, nil
}

func (r *receiptRepo) FindBySaleID(ctx context.Context, saleID uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).First(&rec, "sale_id = ?", saleID).Error
	if err != nil {
		return nil, translate(err, "find receipt by sale")
	}
	return &rec, nil
}

func (r *receiptRepo) List(ctx context.Context) ([]model.Receipt, error) {
	var recs []model.Receipt
	err := r.db.WithContext(ctx).
		Preload("Sale").
		Preload("Owner").
		Preload("Creator").
		Order("issue_date DESC").
		Find(&recs).Error
	return recs, translate(err, "list receipts")
}
