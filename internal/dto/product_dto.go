package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name  string          `json:"name"  validate:"required,min=2"`
	Gram  string          `json:"gram"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
	Stock int             `json:"stock" validate:"min=0"`
}

// UpdateProductRequest uses pointers: only non-nil fields are merged into the
// document, the rest stay untouched.
type UpdateProductRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=2"`
	Gram  *string          `json:"gram"`
	Price *decimal.Decimal `json:"price" validate:"omitempty,min=0"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"omitempty,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Gram      string          `json:"gram,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt string          `json:"created_at"`
}
