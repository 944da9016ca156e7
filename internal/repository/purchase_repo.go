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

// PurchaseRepository defines the data access contract for purchase records.
type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Purchase, error)
	List(ctx context.Context, dateFrom, dateTo string) ([]model.Purchase, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type purchaseRepo struct{ col *mongo.Collection }

func NewPurchaseRepository(db *mongo.Database) PurchaseRepository {
	return &purchaseRepo{col: db.Collection(infra.ColPurchases)}
}

func (r *purchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *purchaseRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *purchaseRepo) List(ctx context.Context, dateFrom, dateTo string) ([]model.Purchase, error) {
	cur, err := r.col.Find(ctx, dateRangeFilter(dateFrom, dateTo),
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var purchases []model.Purchase
	if err := cur.All(ctx, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *purchaseRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *purchaseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
