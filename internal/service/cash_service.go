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

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrDayAlreadyOpen rejects a second OpenDay for the same operator+date.
	ErrDayAlreadyOpen = errors.New("cash day already open")
	// ErrDayNotOpen rejects CloseDay without a prior OpenDay, or a re-close.
	ErrDayNotOpen = errors.New("cash day not open")
)

// CashService tracks each operator's till day by day. TotalMovement is
// computed at close time from the day's cash-method transactions, signed by
// type.
type CashService interface {
	OpenDay(ctx context.Context, operatorID string, req dto.OpenDayRequest) (*dto.DailyCashResponse, error)
	CloseDay(ctx context.Context, operatorID string, req dto.CloseDayRequest) (*dto.DailyCashResponse, error)
	GetDay(ctx context.Context, operatorID, date string) (*dto.DailyCashResponse, error)
	History(ctx context.Context, operatorID string) ([]dto.DailyCashResponse, error)
}

type cashService struct {
	cash         repository.CashRepository
	transactions repository.TransactionRepository
	retry        RetryPolicy
}

func NewCashService(cash repository.CashRepository, transactions repository.TransactionRepository, retry RetryPolicy) CashService {
	return &cashService{cash: cash, transactions: transactions, retry: retry}
}

func (s *cashService) OpenDay(ctx context.Context, operatorID string, req dto.OpenDayRequest) (*dto.DailyCashResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.InitialCash.IsNegative() {
		return nil, fmt.Errorf("%w: initial cash must not be negative", ErrValidation)
	}

	rec := &model.DailyCashRecord{
		OperatorID:  operatorID,
		Date:        date,
		InitialCash: req.InitialCash,
		Status:      "open",
	}
	err = withRetry(ctx, s.retry, func() error {
		return s.cash.Create(ctx, rec)
	})
	if err != nil {
		// The unique (operatorId, date) index makes the double-open race safe.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDayAlreadyOpen
		}
		return nil, err
	}
	return cashResponse(rec), nil
}

func (s *cashService) CloseDay(ctx context.Context, operatorID string, req dto.CloseDayRequest) (*dto.DailyCashResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.FinalCash.IsNegative() {
		return nil, fmt.Errorf("%w: final cash must not be negative", ErrValidation)
	}

	rec, err := s.cash.FindByOperatorDate(ctx, operatorID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotOpen
		}
		return nil, err
	}
	if rec.Status != "open" {
		return nil, ErrDayNotOpen
	}

	movement, err := s.movementForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fields := bson.M{
		"finalCash":     req.FinalCash,
		"totalMovement": movement,
		"status":        "closed",
		"closedAt":      now,
	}
	if err := s.cash.Update(ctx, rec.ID, fields); err != nil {
		return nil, err
	}

	rec.FinalCash = req.FinalCash
	rec.TotalMovement = movement
	rec.Status = "closed"
	rec.ClosedAt = &now
	return cashResponse(rec), nil
}

func (s *cashService) GetDay(ctx context.Context, operatorID, date string) (*dto.DailyCashResponse, error) {
	canonical, err := dateutil.Canonical(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	rec, err := s.cash.FindByOperatorDate(ctx, operatorID, canonical)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotOpen
		}
		return nil, err
	}
	// An open day reports its movement so far.
	if rec.Status == "open" {
		if rec.TotalMovement, err = s.movementForDate(ctx, canonical); err != nil {
			return nil, err
		}
	}
	return cashResponse(rec), nil
}

func (s *cashService) History(ctx context.Context, operatorID string) ([]dto.DailyCashResponse, error) {
	recs, err := s.cash.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DailyCashResponse, 0, len(recs))
	for i := range recs {
		out = append(out, *cashResponse(&recs[i]))
	}
	return out, nil
}

// movementForDate sums the day's cash-method transactions, signed by type.
// Card and transfer movements never touch the till.
func (s *cashService) movementForDate(ctx context.Context, date string) (decimal.Decimal, error) {
	txns, err := s.transactions.List(ctx, repository.TransactionFilter{
		DateFrom: date,
		DateTo:   date,
		Method:   "cash",
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range txns {
		sign := model.TxSign(txns[i].Type)
		if sign == 0 {
			continue
		}
		total = total.Add(txns[i].Amount.Mul(decimal.NewFromInt(int64(sign))))
	}
	return total, nil
}

func cashResponse(rec *model.DailyCashRecord) *dto.DailyCashResponse {
	expected := rec.InitialCash.Add(rec.TotalMovement)
	resp := &dto.DailyCashResponse{
		ID:            rec.ID.Hex(),
		Date:          rec.Date,
		InitialCash:   rec.InitialCash,
		FinalCash:     rec.FinalCash,
		TotalMovement: rec.TotalMovement,
		ExpectedCash:  expected,
		Status:        rec.Status,
	}
	if rec.Status == "closed" {
		resp.Deviation = rec.FinalCash.Sub(expected)
	}
	if display, err := dateutil.DisplayDot(rec.Date); err == nil {
		resp.DisplayDate = display
	}
	return resp
}
