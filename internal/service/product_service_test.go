package service_test

import (
	"context"
	"testing"

	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService() (service.ProductService, *stubProductRepo) {
	repo := newStubProductRepo()
	return service.NewProductService(repo, service.DefaultRetryPolicy), repo
}

func TestProductCreate_SameNameDifferentGram(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Bilezik", Gram: "18", Price: decimal.NewFromInt(800), Stock: 3,
	})
	require.NoError(t, err)

	// Same name, different gram denomination — a distinct product
	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Bilezik", Gram: "22", Price: decimal.NewFromInt(1000), Stock: 5,
	})
	require.NoError(t, err)

	// Exact duplicate is rejected
	_, err = svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Bilezik", Gram: "22", Price: decimal.NewFromInt(1000), Stock: 1,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestProductAdjustStock_GuardsNegative(t *testing.T) {
	svc, _ := newProductService()

	created, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Name: "Kolye", Price: decimal.NewFromInt(500), Stock: 2,
	})
	require.NoError(t, err)
	id := mustOID(t, created.ID)

	resp, err := svc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: -2})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Stock)

	_, err = svc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: -1})
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
}

func TestProductListLowStock(t *testing.T) {
	svc, _ := newProductService()

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{Name: "Kolye", Stock: 2})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.CreateProductRequest{Name: "Bilezik", Stock: 50})
	require.NoError(t, err)

	low, err := svc.ListLowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Kolye", low[0].Name)
}

func TestProductGet_Unknown(t *testing.T) {
	svc, _ := newProductService()
	_, err := svc.Get(context.Background(), mustOID(t, "64b000000000000000000000"))
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}
