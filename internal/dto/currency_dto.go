package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CreateCurrencyRequest deliberately has no total field: total is always
// amount × rate, computed server-side.
type CreateCurrencyRequest struct {
	Name   string          `json:"name"   validate:"required,min=2"`
	TC     string          `json:"tc"     validate:"omitempty,len=11,numeric"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Rate   decimal.Decimal `json:"rate"   validate:"required"`
	Type   string          `json:"type"   validate:"required,oneof=buy sell"`
	Date   string          `json:"date"`
	Method string          `json:"method" validate:"omitempty,oneof=cash card transfer"`
}

type UpdateCurrencyRequest struct {
	Name   *string          `json:"name"   validate:"omitempty,min=2"`
	TC     *string          `json:"tc"     validate:"omitempty,len=11,numeric"`
	Amount *decimal.Decimal `json:"amount"`
	Rate   *decimal.Decimal `json:"rate"`
	Type   *string          `json:"type"   validate:"omitempty,oneof=buy sell"`
	Date   *string          `json:"date"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CurrencyResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TC          string          `json:"tc,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
	Type        string          `json:"type"`
	Date        string          `json:"date"`
	DisplayDate string          `json:"display_date"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   string          `json:"created_at"`
}
