package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names. The per-operator cash sub-collection of the original
// layout is flattened into one collection with an indexed operatorId field.
const (
	ColProducts             = "products"
	ColCustomers            = "customers"
	ColSales                = "sales"
	ColPurchases            = "purchases"
	ColTransactions         = "transactions"
	ColCurrencyTransactions = "currencyTransactions"
	ColDailyCashRecords     = "dailyCashRecords"
	ColUsers                = "users"
)

// NewMongo connects to MongoDB, validates the connection, and ensures the
// indexes the services rely on. The client registry carries a codec that maps
// shopspring decimal.Decimal to BSON Decimal128, so money fields round-trip
// without float drift.
func NewMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(newBSONRegistry()).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("mongo indexes: %w", err)
	}
	return client, db, nil
}

// ensureIndexes creates the indexes idempotently — CreateMany is a no-op for
// indexes that already exist with the same definition.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	// customers.tc is the dedup key for customer resolution. Sparse: anonymous
	// customers carry no tc at all.
	_, err := db.Collection(ColCustomers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tc", Value: 1}},
		Options: options.Index().SetName("uniq_customer_tc").SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColProducts).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "gram", Value: 1}},
		Options: options.Index().SetName("uniq_product_name_gram").SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColDailyCashRecords).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "operatorId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("uniq_cash_operator_date").SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(ColUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("uniq_user_username").SetUnique(true),
	})
	if err != nil {
		return err
	}

	// date-scoped listing and aggregation
	for _, col := range []string{ColSales, ColPurchases, ColTransactions, ColCurrencyTransactions} {
		if _, err := db.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_date"),
		}); err != nil {
			return err
		}
	}
	return nil
}
