package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrencyTransaction is a foreign-currency exchange, independent of the
// product/customer ledger. Total is always amount × rate, computed
// server-side; a client-supplied total is ignored.
// Type: "buy" (shop buys currency, cash out) | "sell" (cash in).
type CurrencyTransaction struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	TC        string             `bson:"tc,omitempty"`
	Amount    decimal.Decimal    `bson:"amount"`
	Rate      decimal.Decimal    `bson:"rate"`
	Type      string             `bson:"type"`
	Date      string             `bson:"date"` // canonical YYYY-MM-DD
	Total     decimal.Decimal    `bson:"total"`
	CreatedAt time.Time          `bson:"createdAt"`
}
