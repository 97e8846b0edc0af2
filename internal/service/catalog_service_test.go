package service_test

import (
	"context"
	"testing"

	"github.com/HostingCuenca/vet-system/internal/dto"
	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_CreateProduct(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{Name: " Suero oral ", UnitType: "ml", UnitPrice: dec(3500), CurrentStock: 12})
	require.NoError(t, err)
	assert.Equal(t, "Suero oral", p.Name)
	assert.Equal(t, "ML", p.UnitType)
	assert.True(t, p.Active)

	p, err = f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Gasas", UnitPrice: dec(500)})
	require.NoError(t, err)
	assert.Equal(t, "UNIT", p.UnitType)

	_, err = f.catalogSvc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Gasas", UnitPrice: dec(-1)})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	all, err := f.catalogSvc.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalog_CreateService(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.services.add("Peluquería canina", 18000, false)

	_, err := f.catalogSvc.CreateService(ctx, dto.CreateServiceRequest{Name: "Consulta", Price: dec(0)})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	svc, err := f.catalogSvc.CreateService(ctx, dto.CreateServiceRequest{Name: "Consulta", Price: dec(20000)})
	require.NoError(t, err)
	assert.True(t, svc.Active)

	active, err := f.catalogSvc.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := f.catalogSvc.ListServices(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
