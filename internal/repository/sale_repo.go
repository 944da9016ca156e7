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

// SaleRepository defines the data access contract for sale records.
type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error)
	List(ctx context.Context, dateFrom, dateTo string) ([]model.Sale, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type saleRepo struct{ col *mongo.Collection }

func NewSaleRepository(db *mongo.Database) SaleRepository {
	return &saleRepo{col: db.Collection(infra.ColSales)}
}

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	if s.Status == "" {
		s.Status = "completed"
	}
	res, err := r.col.InsertOne(ctx, s)
	if err != nil {
		return err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *saleRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error) {
	var s model.Sale
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context, dateFrom, dateTo string) ([]model.Sale, error) {
	cur, err := r.col.Find(ctx, dateRangeFilter(dateFrom, dateTo),
		options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var sales []model.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *saleRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *saleRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return r.Update(ctx, id, bson.M{"status": status})
}

func (r *saleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// dateRangeFilter builds a canonical-date range filter. Canonical dates sort
// lexicographically, so string comparison is correct here.
func dateRangeFilter(from, to string) bson.M {
	filter := bson.M{}
	dateCond := bson.M{}
	if from != "" {
		dateCond["$gte"] = from
	}
	if to != "" {
		dateCond["$lte"] = to
	}
	if len(dateCond) > 0 {
		filter["date"] = dateCond
	}
	return filter
}
