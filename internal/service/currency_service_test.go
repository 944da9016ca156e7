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

type currencyFixture struct {
	currencies   *stubCurrencyRepo
	transactions *stubTransactionRepo
	svc          service.CurrencyService
}

func newCurrencyFixture() *currencyFixture {
	f := &currencyFixture{
		currencies:   newStubCurrencyRepo(),
		transactions: newStubTransactionRepo(),
	}
	tx := stubTxRunner{stores: []txStore{f.currencies, f.transactions}}
	f.svc = service.NewCurrencyService(f.currencies, f.transactions, tx, nil, service.DefaultRetryPolicy)
	return f
}

func TestCurrencyCreate_ComputesTotalServerSide(t *testing.T) {
	f := newCurrencyFixture()

	resp, err := f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.NewFromInt(100),
		Rate:   decimal.RequireFromString("32.5"),
		Type:   "buy",
		Date:   "2024-03-07",
	})
	require.NoError(t, err)

	assert.Equal(t, "3250.00", resp.Total.StringFixed(2))
	assert.Equal(t, "07.03.2024", resp.DisplayDate)
}

func TestCurrencyCreate_WritesCashMovementInSameFlow(t *testing.T) {
	f := newCurrencyFixture()

	// buy: shop pays out local currency
	_, err := f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.NewFromInt(200),
		Rate:   decimal.NewFromInt(30),
		Type:   "buy",
	})
	require.NoError(t, err)

	buys := f.transactions.byType(model.TxTypeExchangeBuy)
	require.Len(t, buys, 1)
	assert.True(t, buys[0].Amount.Equal(decimal.NewFromInt(6000)))
	assert.NotNil(t, buys[0].ReferenceID)

	// sell: cash comes in
	_, err = f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.NewFromInt(50),
		Rate:   decimal.NewFromInt(30),
		Type:   "sell",
	})
	require.NoError(t, err)
	require.Len(t, f.transactions.byType(model.TxTypeExchangeSell), 1)
}

func TestCurrencyCreate_RejectsNonPositiveAmountOrRate(t *testing.T) {
	f := newCurrencyFixture()

	_, err := f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.Zero,
		Rate:   decimal.NewFromInt(30),
		Type:   "buy",
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.NewFromInt(10),
		Rate:   decimal.NewFromInt(-1),
		Type:   "buy",
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCurrencyUpdate_RecomputesTotal(t *testing.T) {
	f := newCurrencyFixture()

	created, err := f.svc.Create(context.Background(), dto.CreateCurrencyRequest{
		Name:   "Mehmet Demir",
		Amount: decimal.NewFromInt(100),
		Rate:   decimal.NewFromInt(30),
		Type:   "buy",
	})
	require.NoError(t, err)

	newRate := decimal.NewFromInt(40)
	updated, err := f.svc.Update(context.Background(), mustOID(t, created.ID), dto.UpdateCurrencyRequest{Rate: &newRate})
	require.NoError(t, err)
	assert.Equal(t, "4000.00", updated.Total.StringFixed(2))
}
