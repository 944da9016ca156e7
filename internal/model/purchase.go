package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase records a product entering the shop, bought from a customer.
// Stock is incremented unconditionally; the customer's debt decreases by
// the unpaid remainder (total - paid).
type Purchase struct {
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
	CreatedAt     time.Time           `bson:"createdAt"`
}
