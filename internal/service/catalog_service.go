package service

import (
	"context"
	"strings"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/model"
	"github.com/HostingCuenca/vet-system/internal/repository"
)

// CatalogService exposes the minimal product and service catalog the till sells from.
type CatalogService interface {
	ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error)
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error)
	ListServices(ctx context.Context, includeInactive bool) ([]model.ServiceCatalog, error)
	CreateService(ctx context.Context, req dto.CreateServiceRequest) (*model.ServiceCatalog, error)
}

type catalogService struct {
	products repository.ProductRepository
	services repository.ServiceRepository
}

func NewCatalogService(products repository.ProductRepository, services repository.ServiceRepository) CatalogService {
	return &catalogService{products: products, services: services}
}

func (s *catalogService) ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	return s.products.List(ctx, includeInactive)
}

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*model.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("el nombre es obligatorio")
	}
	if req.UnitPrice.IsNegative() {
		return nil, invalidInput("el precio no puede ser negativo")
	}
	if err := checkMoney(req.UnitPrice, "el precio"); err != nil {
		return nil, err
	}
	if req.CurrentStock < 0 || req.MinStock < 0 {
		return nil, invalidInput("el stock no puede ser negativo")
	}
	unitType := strings.ToUpper(strings.TrimSpace(req.UnitType))
	if unitType == "" {
		unitType = "UNIT"
	}
	p := &model.Product{
		Name:         name,
		Category:     req.Category,
		UnitType:     unitType,
		UnitPrice:    req.UnitPrice,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		Active:       true,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) ListServices(ctx context.Context, includeInactive bool) ([]model.ServiceCatalog, error) {
	return s.services.List(ctx, includeInactive)
}

func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest) (*model.ServiceCatalog, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalidInput("el nombre es obligatorio")
	}
	if !req.Price.IsPositive() {
		return nil, invalidInput("el precio debe ser mayor a cero")
	}
	if err := checkMoney(req.Price, "el precio"); err != nil {
		return nil, err
	}
	svc := &model.ServiceCatalog{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Active:      true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}
