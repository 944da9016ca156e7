package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,min=2"`
	TC    string `json:"tc"    validate:"omitempty,len=11,numeric"`
	Phone string `json:"phone" validate:"omitempty,min=7"`
}

// UpdateCustomerRequest uses pointers for partial-merge semantics. Balance
// fields are deliberately editable here — the admin view allows manual
// corrections; the reconciliation flow never goes through this DTO.
type UpdateCustomerRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=2"`
	TC    *string          `json:"tc"    validate:"omitempty,len=11,numeric"`
	Phone *string          `json:"phone" validate:"omitempty,min=7"`
	Total *decimal.Decimal `json:"total"`
	Paid  *decimal.Decimal `json:"paid"`
	Debt  *decimal.Decimal `json:"debt"`
	Date  *string          `json:"date"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	TC          string          `json:"tc,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	SoldItem    string          `json:"sold_item,omitempty"`
	BoughtItem  string          `json:"bought_item,omitempty"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Debt        decimal.Decimal `json:"debt"`
	Date        string          `json:"date,omitempty"`
	DisplayDate string          `json:"display_date,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

// CustomerEvent is one element of the live feed stream.
// Op: "insert" | "update" | "replace" | "delete".
type CustomerEvent struct {
	Op       string            `json:"op"`
	ID       string            `json:"id"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}
