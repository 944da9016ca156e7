package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyCashRecord tracks one operator's till for one day.
// Status: "open" | "closed". A unique (operatorId, date) index keeps one
// record per operator per day. TotalMovement is computed at close time from
// the day's cash transactions.
type DailyCashRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	OperatorID    string             `bson:"operatorId"`
	Date          string             `bson:"date"` // canonical YYYY-MM-DD
	InitialCash   decimal.Decimal    `bson:"initialCash"`
	FinalCash     decimal.Decimal    `bson:"finalCash"`
	TotalMovement decimal.Decimal    `bson:"totalMovement"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
	ClosedAt      *time.Time         `bson:"closedAt,omitempty"`
}
