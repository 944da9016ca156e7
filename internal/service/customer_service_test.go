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

func newCustomerService() (service.CustomerService, *stubCustomerRepo) {
	repo := newStubCustomerRepo()
	return service.NewCustomerService(repo, service.DefaultRetryPolicy), repo
}

func TestCustomerCreate_RejectsDuplicateTC(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Ayşe Yılmaz", TC: "12345678901"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateCustomerRequest{Name: "Başka Ayşe", TC: "12345678901"})
	assert.ErrorIs(t, err, service.ErrValidation)

	// Customers without a tc are always allowed
	_, err = svc.Create(ctx, dto.CreateCustomerRequest{Name: "Anonim"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, dto.CreateCustomerRequest{Name: "Anonim 2"})
	require.NoError(t, err)
}

func TestCustomerUpdate_PartialMerge(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Ayşe Yılmaz", TC: "12345678901", Phone: "5551234567"})
	require.NoError(t, err)

	newDebt := decimal.NewFromInt(250)
	updated, err := svc.Update(ctx, mustOID(t, created.ID), dto.UpdateCustomerRequest{Debt: &newDebt})
	require.NoError(t, err)

	// Only debt changed; identity fields survive the merge
	assert.True(t, updated.Debt.Equal(newDebt))
	assert.Equal(t, "Ayşe Yılmaz", updated.Name)
	assert.Equal(t, "12345678901", updated.TC)
	assert.Equal(t, "5551234567", updated.Phone)
}

func TestCustomerUpdate_EmptyRequest(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Ayşe Yılmaz"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, mustOID(t, created.ID), dto.UpdateCustomerRequest{})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCustomerGetByTC(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateCustomerRequest{Name: "Ayşe Yılmaz", TC: "12345678901"})
	require.NoError(t, err)

	found, err := svc.GetByTC(ctx, "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Yılmaz", found.Name)

	_, err = svc.GetByTC(ctx, "00000000000")
	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}
