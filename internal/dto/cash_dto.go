package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenDayRequest struct {
	InitialCash decimal.Decimal `json:"initial_cash" validate:"min=0"`
	Date        string          `json:"date"`
}

type CloseDayRequest struct {
	FinalCash decimal.Decimal `json:"final_cash" validate:"min=0"`
	Date      string          `json:"date"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DailyCashResponse struct {
	ID            string          `json:"id"`
	Date          string          `json:"date"`
	DisplayDate   string          `json:"display_date"`
	InitialCash   decimal.Decimal `json:"initial_cash"`
	FinalCash     decimal.Decimal `json:"final_cash"`
	TotalMovement decimal.Decimal `json:"total_movement"`
	// ExpectedCash = initial + total movement; Deviation = final − expected.
	ExpectedCash decimal.Decimal `json:"expected_cash"`
	Deviation    decimal.Decimal `json:"deviation"`
	Status       string          `json:"status"`
}
