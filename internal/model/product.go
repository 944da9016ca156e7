package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a stock item. Name and Gram together identify a product:
// the same name can exist in several gram denominations, each with its
// own price and stock. Stock never goes below zero — sales that would
// overdraw it are rejected in full.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Gram      string             `bson:"gram"`
	Price     decimal.Decimal    `bson:"price"`
	Stock     int                `bson:"stock"`
	CreatedAt time.Time          `bson:"createdAt"`
}
