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

// CurrencyRepository defines the data access contract for currency exchanges.
type CurrencyRepository interface {
	Create(ctx context.Context, c *model.CurrencyTransaction) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.CurrencyTransaction, error)
	List(ctx context.Context, dateFrom, dateTo string) ([]model.CurrencyTransaction, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type currencyRepo struct{ col *mongo.Collection }

func NewCurrencyRepository(db *mongo.Database) CurrencyRepository {
	return &currencyRepo{col: db.Collection(infra.ColCurrencyTransactions)}
}

func (r *currencyRepo) Create(ctx context.Context, c *model.CurrencyTransaction) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *currencyRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.CurrencyTransaction, error) {
	var c model.CurrencyTransaction
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *currencyRepo) List(ctx context.Context, dateFrom, dateTo string) ([]model.CurrencyTransaction, error) {
	cur, err := r.col.Find(ctx, dateRangeFilter(dateFrom, dateTo),
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var txs []model.CurrencyTransaction
	if err := cur.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *currencyRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *currencyRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
