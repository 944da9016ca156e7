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

// ProductRepository defines the data access contract for products.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	// FindByNameGram resolves the (name, gram) identity axis used by sales.
	FindByNameGram(ctx context.Context, name, gram string) (*model.Product, error)
	List(ctx context.Context, nameFilter string) ([]model.Product, error)
	ListLowStock(ctx context.Context, threshold int) ([]model.Product, error)
	// Update applies partial-merge semantics: only the given fields change.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AdjustStock changes stock by delta, refusing to go below zero.
	// Returns ErrNoMatch when the guard fails or the product is missing.
	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error
}

type productRepo struct{ col *mongo.Collection }

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &productRepo{col: db.Collection(infra.ColProducts)}
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
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

func (r *productRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var p model.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *productRepo) FindByNameGram(ctx context.Context, name, gram string) (*model.Product, error) {
	filter := bson.M{"name": name}
	if gram != "" {
		filter["gram"] = gram
	}
	var p model.Product
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, nameFilter string) ([]model.Product, error) {
	filter := bson.M{}
	if nameFilter != "" {
		filter["name"] = bson.M{"$regex": nameFilter, "$options": "i"}
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "gram", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) ListLowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"stock": bson.M{"$lte": threshold}},
		options.Find().SetSort(bson.D{{Key: "stock", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productRepo) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		// conditional write: the decrement only lands when enough stock exists,
		// which closes the check-then-act race between concurrent sales
		filter["stock"] = bson.M{"$gte": -delta}
	}
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"stock": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}
