package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateTransactionRequest struct {
	Type        string          `json:"type"        validate:"required,oneof=sale purchase exchange-buy exchange-sell income expense"`
	Description string          `json:"description" validate:"required,min=3"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Date        string          `json:"date"`
	Method      string          `json:"method"      validate:"omitempty,oneof=cash card transfer"`
}

type UpdateTransactionRequest struct {
	Type        *string          `json:"type"        validate:"omitempty,oneof=sale purchase exchange-buy exchange-sell income expense"`
	Description *string          `json:"description" validate:"omitempty,min=3"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Method      *string          `json:"method"      validate:"omitempty,oneof=cash card transfer"`
}

// TrackingFilter is bound from the query string of GET /v1/transactions.
type TrackingFilter struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Type     string `form:"type"`
	Method   string `form:"method"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	DisplayDate string          `json:"display_date"`
	Method      string          `json:"method"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedAt   string          `json:"created_at"`
}
