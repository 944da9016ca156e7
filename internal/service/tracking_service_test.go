package service_test

import (
	"context"
	"testing"

	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingService() (service.TrackingService, *stubTransactionRepo) {
	repo := newStubTransactionRepo()
	return service.NewTrackingService(repo, service.DefaultRetryPolicy), repo
}

func TestTrackingCreate_NormalizesDateAndDefaultsMethod(t *testing.T) {
	svc, _ := newTrackingService()

	resp, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		Type:        model.TxTypeExpense,
		Description: "window cleaning",
		Amount:      decimal.NewFromInt(150),
		Date:        "07-03-2024",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-07", resp.Date)
	assert.Equal(t, "07.03.2024", resp.DisplayDate)
	assert.Equal(t, "cash", resp.Method)
}

func TestTrackingCreate_RejectsNegativeAmount(t *testing.T) {
	svc, _ := newTrackingService()

	_, err := svc.Create(context.Background(), dto.CreateTransactionRequest{
		Type:        model.TxTypeIncome,
		Description: "scrap gold sale",
		Amount:      decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestTrackingList_FiltersByTypeAndMethod(t *testing.T) {
	svc, repo := newTrackingService()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Transaction{Type: model.TxTypeSale, Date: "2024-03-07", Method: "cash", Amount: decimal.NewFromInt(100)}))
	require.NoError(t, repo.Create(ctx, &model.Transaction{Type: model.TxTypeExpense, Date: "2024-03-07", Method: "card", Amount: decimal.NewFromInt(50)}))

	out, err := svc.List(ctx, dto.TrackingFilter{Type: model.TxTypeExpense})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.TxTypeExpense, out[0].Type)

	out, err = svc.List(ctx, dto.TrackingFilter{Method: "cash"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, model.TxTypeSale, out[0].Type)
}

func TestTrackingDelete_Unknown(t *testing.T) {
	svc, _ := newTrackingService()
	err := svc.Delete(context.Background(), mustOID(t, "64b000000000000000000001"))
	assert.ErrorIs(t, err, service.ErrValidation)
}
