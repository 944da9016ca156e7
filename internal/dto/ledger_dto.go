package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CustomerRef is the embedded customer snapshot a sale/purchase may carry
// when no customerId is known yet. TC is the dedup key: when a customer with
// the same tc exists it is reused instead of creating a duplicate.
type CustomerRef struct {
	Name  string `json:"name"  validate:"required_with=TC,omitempty,min=2"`
	TC    string `json:"tc"    validate:"omitempty,len=11,numeric"`
	Phone string `json:"phone" validate:"omitempty,min=7"`
}

type RecordSaleRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Gram        string `json:"gram"`
	// CustomerID takes precedence over the embedded snapshot. Both absent =
	// anonymous sale, no ledger reconciliation.
	CustomerID    string          `json:"customer_id"    validate:"omitempty,len=24,hexadecimal"`
	Customer      *CustomerRef    `json:"customer"       validate:"omitempty"`
	Quantity      int             `json:"quantity"       validate:"required,min=1"`
	Total         decimal.Decimal `json:"total"          validate:"min=0"`
	Paid          decimal.Decimal `json:"paid"           validate:"min=0"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash card transfer"`
}

type RecordPurchaseRequest struct {
	// ProductID identifies the product to restock; name+gram is the fallback.
	ProductID     string          `json:"product_id"     validate:"omitempty,len=24,hexadecimal"`
	ProductName   string          `json:"product_name"   validate:"required_without=ProductID"`
	Gram          string          `json:"gram"`
	CustomerID    string          `json:"customer_id"    validate:"omitempty,len=24,hexadecimal"`
	Customer      *CustomerRef    `json:"customer"       validate:"omitempty"`
	Quantity      int             `json:"quantity"       validate:"required,min=1"`
	Total         decimal.Decimal `json:"total"          validate:"min=0"`
	Paid          decimal.Decimal `json:"paid"           validate:"min=0"`
	Date          string          `json:"date"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=cash card transfer"`
}

// ListFilter is bound from the query string of the list endpoints.
// Dates accept canonical or display formats and are normalized on entry.
type ListFilter struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Gram          string          `json:"gram,omitempty"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerDebt  decimal.Decimal `json:"customer_debt"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Date          string          `json:"date"`
	DisplayDate   string          `json:"display_date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	StockAfter    int             `json:"stock_after"`
}

type PurchaseResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Gram          string          `json:"gram,omitempty"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerDebt  decimal.Decimal `json:"customer_debt"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Date          string          `json:"date"`
	DisplayDate   string          `json:"display_date"`
	PaymentMethod string          `json:"payment_method"`
	StockAfter    int             `json:"stock_after"`
}
