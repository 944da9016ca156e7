package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/dto"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"
	"github.com/alperendnc/jewelery-app-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProductService manages the catalog. Stock changes through here are manual
// corrections; trade-driven movement goes through the ledger.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id primitive.ObjectID) (*dto.ProductResponse, error)
	List(ctx context.Context, nameFilter string) ([]dto.ProductResponse, error)
	ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	AdjustStock(ctx context.Context, id primitive.ObjectID, req dto.AdjustStockRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productService struct {
	products repository.ProductRepository
	retry    RetryPolicy
}

func NewProductService(products repository.ProductRepository, retry RetryPolicy) ProductService {
	return &productService{products: products, retry: retry}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &model.Product{
		Name:  req.Name,
		Gram:  req.Gram,
		Price: req.Price,
		Stock: req.Stock,
	}
	err := withRetry(ctx, s.retry, func() error {
		return s.products.Create(ctx, product)
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: product %q %s already exists", ErrValidation, req.Name, req.Gram)
		}
		return nil, err
	}
	return productResponse(product), nil
}

func (s *productService) Get(ctx context.Context, id primitive.ObjectID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return productResponse(product), nil
}

func (s *productService) List(ctx context.Context, nameFilter string) ([]dto.ProductResponse, error) {
	products, err := s.products.List(ctx, nameFilter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) ListLowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold < 0 {
		threshold = 0
	}
	products, err := s.products.ListLowStock(ctx, threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Update(ctx context.Context, id primitive.ObjectID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	fields := bson.M{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Gram != nil {
		fields["gram"] = *req.Gram
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}
	if err := s.products.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: another product already uses that name and gram", ErrValidation)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *productService) AdjustStock(ctx context.Context, id primitive.ObjectID, req dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if err := s.products.AdjustStock(ctx, id, req.Delta); err != nil {
		if errors.Is(err, repository.ErrNoMatch) {
			// Either the product is missing or the decrement would
			// overdraw; disambiguate for the caller.
			if _, ferr := s.products.FindByID(ctx, id); errors.Is(ferr, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, ErrInsufficientStock
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

func productResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID.Hex(),
		Name:      p.Name,
		Gram:      p.Gram,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}
