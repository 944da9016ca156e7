package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/dateutil"
	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"
	"github.com/alperendnc/jewelery-app-sub000/internal/worker"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrencyService records foreign-currency exchanges. Each exchange writes a
// matching cash transaction in the same store transaction, so the till and
// the exchange book can never disagree.
type CurrencyService interface {
	Create(ctx context.Context, req dto.CreateCurrencyRequest) (*dto.CurrencyResponse, error)
	Get(ctx context.Context, id primitive.ObjectID) (*dto.CurrencyResponse, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.CurrencyResponse, error)
	Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateCurrencyRequest) (*dto.CurrencyResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type currencyService struct {
	currencies   repository.CurrencyRepository
	transactions repository.TransactionRepository
	tx           repository.TxRunner
	dispatcher   *worker.Dispatcher
	retry        RetryPolicy
}

func NewCurrencyService(
	currencies repository.CurrencyRepository,
	transactions repository.TransactionRepository,
	tx repository.TxRunner,
	dispatcher *worker.Dispatcher,
	retry RetryPolicy,
) CurrencyService {
	return &currencyService{
		currencies:   currencies,
		transactions: transactions,
		tx:           tx,
		dispatcher:   dispatcher,
		retry:        retry,
	}
}

func (s *currencyService) Create(ctx context.Context, req dto.CreateCurrencyRequest) (*dto.CurrencyResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !req.Amount.IsPositive() || !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: amount and rate must be positive", ErrValidation)
	}
	method := req.Method
	if method == "" {
		method = "cash"
	}

	exchange := &model.CurrencyTransaction{
		Name:   req.Name,
		TC:     req.TC,
		Amount: req.Amount,
		Rate:   req.Rate,
		Type:   req.Type,
		Date:   date,
		Total:  req.Amount.Mul(req.Rate).Round(2),
	}

	txType := model.TxTypeExchangeBuy
	if req.Type == "sell" {
		txType = model.TxTypeExchangeSell
	}

	err = withRetry(ctx, s.retry, func() error {
		return s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			if err := s.currencies.Create(txCtx, exchange); err != nil {
				return err
			}
			txn := &model.Transaction{
				Type:        txType,
				Description: fmt.Sprintf("exchange %s: %s x %s", req.Type, req.Amount.String(), req.Rate.String()),
				Amount:      exchange.Total,
				Date:        date,
				Method:      method,
				ReferenceID: &exchange.ID,
			}
			return s.transactions.Create(txCtx, txn)
		})
	})
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueReportInvalidate(ctx, date); err != nil {
			log.Warn().Err(err).Str("date", date).Msg("failed to enqueue report invalidation")
		}
	}
	return currencyResponse(exchange), nil
}

func (s *currencyService) Get(ctx context.Context, id primitive.ObjectID) (*dto.CurrencyResponse, error) {
	exchange, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: exchange %s", ErrValidation, id.Hex())
		}
		return nil, err
	}
	return currencyResponse(exchange), nil
}

func (s *currencyService) List(ctx context.Context, filter dto.ListFilter) ([]dto.CurrencyResponse, error) {
	from, to, err := normalizeRange(filter)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.currencies.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CurrencyResponse, 0, len(exchanges))
	for i := range exchanges {
		out = append(out, *currencyResponse(&exchanges[i]))
	}
	return out, nil
}

// Update edits the exchange record. When amount, rate or type change the
// total is recomputed from the merged values.
func (s *currencyService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateCurrencyRequest) (*dto.CurrencyResponse, error) {
	exchange, err := s.currencies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: exchange %s", ErrValidation, id.Hex())
		}
		return nil, err
	}

	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.TC != nil {
		fields["tc"] = *req.TC
	}
	amount, rate := exchange.Amount, exchange.Rate
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
		}
		amount = *req.Amount
		fields["amount"] = amount
	}
	if req.Rate != nil {
		if !req.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: rate must be positive", ErrValidation)
		}
		rate = *req.Rate
		fields["rate"] = rate
	}
	if req.Amount != nil || req.Rate != nil {
		fields["total"] = amount.Mul(rate).Round(2)
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Date != nil {
		date, err := dateutil.Canonical(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["date"] = date
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.currencies.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *currencyService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.currencies.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: exchange %s", ErrValidation, id.Hex())
	}
	return err
}

func currencyResponse(c *model.CurrencyTransaction) *dto.CurrencyResponse {
	resp := &dto.CurrencyResponse{
		ID:        c.ID.Hex(),
		Name:      c.Name,
		TC:        c.TC,
		Amount:    c.Amount,
		Rate:      c.Rate,
		Type:      c.Type,
		Date:      c.Date,
		Total:     c.Total,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
	if display, err := dateutil.DisplayDot(c.Date); err == nil {
		resp.DisplayDate = display
	}
	return resp
}
