package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is an accumulator, not an append-only ledger. Each reconciliation
// overwrites Total/Paid/SoldItem|BoughtItem/Date with the latest transaction's
// values; only Debt carries forward, adjusted relative to its prior value.
// Debt is a signed balance: positive = customer owes the shop. Negative is
// permitted (shop owes the customer).
//
// TC is the national identity number and the dedup key — a unique sparse
// index keeps at most one document per TC.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	TC         string             `bson:"tc,omitempty"`
	Phone      string             `bson:"phone,omitempty"`
	SoldItem   string             `bson:"soldItem,omitempty"`
	BoughtItem string             `bson:"boughtItem,omitempty"`
	Total      decimal.Decimal    `bson:"total"`
	Paid       decimal.Decimal    `bson:"paid"`
	Debt       decimal.Decimal    `bson:"debt"`
	Date       string             `bson:"date,omitempty"` // canonical YYYY-MM-DD
	// Version is the optimistic-lock counter; every balance update is
	// conditional on the version it read.
	Version   int64     `bson:"version"`
	CreatedAt time.Time `bson:"createdAt"`
}
