package dto

import "github.com/shopspring/decimal"

// DailyReportResponse aggregates one day of activity across sales,
// purchases, currency exchanges and cash movements. Derived data — always
// recomputable from the collections.
type DailyReportResponse struct {
	Date        string `json:"date"`
	DisplayDate string `json:"display_date"`

	SalesCount    int             `json:"sales_count"`
	SalesTotal    decimal.Decimal `json:"sales_total"`
	PurchaseCount int             `json:"purchase_count"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`

	ExchangeCount int             `json:"exchange_count"`
	ExchangeIn    decimal.Decimal `json:"exchange_in"`
	ExchangeOut   decimal.Decimal `json:"exchange_out"`

	CashIn           decimal.Decimal `json:"cash_in"`
	CashOut          decimal.Decimal `json:"cash_out"`
	NetMovement      decimal.Decimal `json:"net_movement"`
	TransactionCount int             `json:"transaction_count"`
}

type RangeReportResponse struct {
	From string                `json:"from"`
	To   string                `json:"to"`
	Days []DailyReportResponse `json:"days"`

	SalesTotal    decimal.Decimal `json:"sales_total"`
	PurchaseTotal decimal.Decimal `json:"purchase_total"`
	NetMovement   decimal.Decimal `json:"net_movement"`
}
