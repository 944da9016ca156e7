package repository

import (
	"context"
	"time"

	"github.com/alperendnc/jewelery-app-sub000/internal/infra"
	"github.com/alperendnc/jewelery-app-sub000/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TransactionFilter narrows the tracking view listing.
type TransactionFilter struct {
	DateFrom string
	DateTo   string
	Type     string
	Method   string
}

// TransactionRepository defines the data access contract for cash-movement
// audit records.
type TransactionRepository interface {
	Create(ctx context.Context, t *model.Transaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type transactionRepo struct{ col *mongo.Collection }

func NewTransactionRepository(db *mongo.Database) TransactionRepository {
	return &transactionRepo{col: db.Collection(infra.ColTransactions)}
}

func (r *transactionRepo) Create(ctx context.Context, t *model.Transaction) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *transactionRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Transaction, error) {
	var t model.Transaction
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *transactionRepo) List(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	q := dateRangeFilter(filter.DateFrom, filter.DateTo)
	if filter.Type != "" {
		q["type"] = filter.Type
	}
	if filter.Method != "" {
		q["method"] = filter.Method
	}
	cur, err := r.col.Find(ctx, q,
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var txs []model.Transaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *transactionRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *transactionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
