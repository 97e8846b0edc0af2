package repository

import (
	"context"

	"github.com/HostingCuenca/vet-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository is the data access contract for stocked products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// List returns active products only unless includeInactive is set.
	List(ctx context.Context, includeInactive bool) ([]model.Product, error)

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error)

	// DecrementStockTx subtracts qty only when enough stock is on hand.
	// Returns ErrConditionFailed otherwise; the row is left untouched.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, "create product")
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find product")
	}
	return &p, nil
}

func (r *productRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := tx.First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err, "find product")
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&products).Error
	return products, translate(err, "list products")
}

func (r *productRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND current_stock >= ?", id, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return translate(res.Error, "decrement stock")
	}
	if res.RowsAffected == 0 {
		return ErrConditionFailed
	}
	return nil
}

// ServiceRepository is the data access contract for the service catalog.
type ServiceRepository interface {
	Create(ctx context.Context, s *model.ServiceCatalog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceCatalog, error)
	List(ctx context.Context, includeInactive bool) ([]model.ServiceCatalog, error)
}

type serviceRepo struct{ db *gorm.DB }

func NewServiceRepository(db *gorm.DB) ServiceRepository { return &serviceRepo{db: db} }

func (r *serviceRepo) Create(ctx context.Context, s *model.ServiceCatalog) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "create service")
}

func (r *serviceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceCatalog, error) {
	var s model.ServiceCatalog
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "find service")
	}
	return &s, nil
}

func (r *serviceRepo) List(ctx context.Context, includeInactive bool) ([]model.ServiceCatalog, error) {
	var services []model.ServiceCatalog
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("category ASC, name ASC").Find(&services).Error
	return services, translate(err, "list services")
}
