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

// CashRepository defines the data access contract for per-operator daily
// cash records. Every method is scoped by operatorId — one operator never
// sees another's till.
type CashRepository interface {
	Create(ctx context.Context, rec *model.DailyCashRecord) error
	FindByOperatorDate(ctx context.Context, operatorID, date string) (*model.DailyCashRecord, error)
	ListByOperator(ctx context.Context, operatorID string) ([]model.DailyCashRecord, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

type cashRepo struct{ col *mongo.Collection }

func NewCashRepository(db *mongo.Database) CashRepository {
	return &cashRepo{col: db.Collection(infra.ColDailyCashRecords)}
}

func (r *cashRepo) Create(ctx context.Context, rec *model.DailyCashRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		return err
	}
	rec.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *cashRepo) FindByOperatorDate(ctx context.Context, operatorID, date string) (*model.DailyCashRecord, error) {
	var rec model.DailyCashRecord
	err := r.col.FindOne(ctx, bson.M{"operatorId": operatorID, "date": date}).Decode(&rec)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &rec, nil
}

func (r *cashRepo) ListByOperator(ctx context.Context, operatorID string) ([]model.DailyCashRecord, error) {
	cur, err := r.col.Find(ctx, bson.M{"operatorId": operatorID},
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var recs []model.DailyCashRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *cashRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
