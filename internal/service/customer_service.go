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

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerService manages the customer registry and its live feed.
type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id primitive.ObjectID) (*dto.CustomerResponse, error)
	GetByTC(ctx context.Context, tc string) (*dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Stream pushes registry changes to send until ctx is cancelled or send
	// returns an error. Backed by a change stream, so edits made by the
	// reconciliation flow arrive too.
	Stream(ctx context.Context, send func(dto.CustomerEvent) error) error
}

type customerService struct {
	customers repository.CustomerRepository
	retry     RetryPolicy
}

func NewCustomerService(customers repository.CustomerRepository, retry RetryPolicy) CustomerService {
	return &customerService{customers: customers, retry: retry}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &model.Customer{
		Name:  req.Name,
		TC:    req.TC,
		Phone: req.Phone,
	}
	err := withRetry(ctx, s.retry, func() error {
		return s.customers.Create(ctx, customer)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: a customer with tc %s already exists", ErrValidation, req.TC)
		}
		return nil, err
	}
	return customerResponse(customer), nil
}

func (s *customerService) Get(ctx context.Context, id primitive.ObjectID) (*dto.CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customerResponse(customer), nil
}

func (s *customerService) GetByTC(ctx context.Context, tc string) (*dto.CustomerResponse, error) {
	customer, err := s.customers.FindByTC(ctx, tc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customerResponse(customer), nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *customerResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.TC != nil {
		fields["tc"] = *req.TC
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Total != nil {
		fields["total"] = *req.Total
	}
	if req.Paid != nil {
		fields["paid"] = *req.Paid
	}
	if req.Debt != nil {
		fields["debt"] = *req.Debt
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
	if err := s.customers.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: another customer already uses that tc", ErrValidation)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *customerService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.customers.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrCustomerNotFound
	}
	return err
}

func (s *customerService) Stream(ctx context.Context, send func(dto.CustomerEvent) error) error {
	stream, err := s.customers.Watch(ctx)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	for stream.Next(ctx) {
		var change struct {
			OperationType string `bson:"operationType"`
			DocumentKey   struct {
				ID primitive.ObjectID `bson:"_id"`
			} `bson:"documentKey"`
			FullDocument *model.Customer `bson:"fullDocument"`
		}
		if err := stream.Decode(&change); err != nil {
			log.Warn().Err(err).Msg("undecodable customer change event")
			continue
		}
		event := dto.CustomerEvent{
			Op: change.OperationType,
			ID: change.DocumentKey.ID.Hex(),
		}
		if change.FullDocument != nil {
			event.Customer = customerResponse(change.FullDocument)
		}
		if err := send(event); err != nil {
			return err
		}
	}
	return stream.Err()
}

func customerResponse(c *model.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:         c.ID.Hex(),
		Name:       c.Name,
		TC:         c.TC,
		Phone:      c.Phone,
		SoldItem:   c.SoldItem,
		BoughtItem: c.BoughtItem,
		Total:      c.Total,
		Paid:       c.Paid,
		Debt:       c.Debt,
		Date:       c.Date,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.Date != "" {
		if display, err := dateutil.DisplayDot(c.Date); err == nil {
			resp.DisplayDate = display
		}
	}
	return resp
}
