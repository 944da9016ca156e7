package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale records a product leaving the shop. Product and customer names are
// denormalized so the record stays readable after either is deleted.
// Status: "completed" | "voided". Voiding creates inverse movements,
// the document itself is never deleted by the void flow.
type Sale struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	ProductID     primitive.ObjectID  `bson:"productId"`
	ProductName   string              `bson:"productName"`
	Gram          string              `bson:"gram,omitempty"`
	CustomerID    *primitive.ObjectID `bson:"customerId,omitempty"`
	CustomerName  string              `bson:"customerName,omitempty"`
	CustomerTC    string              `bson:"customerTc,omitempty"`
	Quantity      int                 `bson:"quantity"`
	Total         decimal.Decimal     `bson:"total"`
	Paid          decimal.Decimal     `bson:"paid"`
	Date          string              `bson:"date"` // canonical YYYY-MM-DD
	PaymentMethod string              `bson:"paymentMethod"`
	Status        string              `bson:"status"`
	CreatedAt     time.Time           `bson:"createdAt"`
}
