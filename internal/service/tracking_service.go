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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingService is the manual side of the cash journal: free-form income
// and expense entries, plus edit access to the records the ledger wrote.
type TrackingService interface {
	Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Get(ctx context.Context, id primitive.ObjectID) (*dto.TransactionResponse, error)
	List(ctx context.Context, filter dto.TrackingFilter) ([]dto.TransactionResponse, error)
	Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type trackingService struct {
	transactions repository.TransactionRepository
	retry        RetryPolicy
}

func NewTrackingService(transactions repository.TransactionRepository, retry RetryPolicy) TrackingService {
	return &trackingService{transactions: transactions, retry: retry}
}

func (s *trackingService) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	date, err := dateutil.Canonical(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	method := req.Method
	if method == "" {
		method = "cash"
	}
	txn := &model.Transaction{
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Method:      method,
	}
	err = withRetry(ctx, s.retry, func() error {
		return s.transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}
	return transactionResponse(txn), nil
}

func (s *trackingService) Get(ctx context.Context, id primitive.ObjectID) (*dto.TransactionResponse, error) {
	txn, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrValidation, id.Hex())
		}
		return nil, err
	}
	return transactionResponse(txn), nil
}

func (s *trackingService) List(ctx context.Context, filter dto.TrackingFilter) ([]dto.TransactionResponse, error) {
	repoFilter := repository.TransactionFilter{Type: filter.Type, Method: filter.Method}
	var err error
	if filter.DateFrom != "" {
		if repoFilter.DateFrom, err = dateutil.Canonical(filter.DateFrom); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if filter.DateTo != "" {
		if repoFilter.DateTo, err = dateutil.Canonical(filter.DateTo); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	txns, err := s.transactions.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, *transactionResponse(&txns[i]))
	}
	return out, nil
}

func (s *trackingService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	fields := bson.M{}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", ErrValidation)
		}
		fields["amount"] = *req.Amount
	}
	if req.Date != nil {
		date, err := dateutil.Canonical(*req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["date"] = date
	}
	if req.Method != nil {
		fields["method"] = *req.Method
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.transactions.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: transaction %s", ErrValidation, id.Hex())
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *trackingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.transactions.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: transaction %s", ErrValidation, id.Hex())
	}
	return err
}

func transactionResponse(t *model.Transaction) *dto.TransactionResponse {
	resp := &dto.TransactionResponse{
		ID:          t.ID.Hex(),
		Type:        t.Type,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Method:      t.Method,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.ReferenceID != nil {
		resp.ReferenceID = t.ReferenceID.Hex()
	}
	if display, err := dateutil.DisplayDot(t.Date); err == nil {
		resp.DisplayDate = display
	}
	return resp
}
