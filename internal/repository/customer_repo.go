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

// CustomerRepository defines the data access contract for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	// FindByTC is the dedup lookup; tc carries a unique sparse index.
	FindByTC(ctx context.Context, tc string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	// Update applies partial-merge semantics: untouched fields are preserved.
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	// UpdateBalance merges fields only when the document still carries the
	// version the caller read, and bumps the version. A lost race returns
	// ErrNoMatch.
	UpdateBalance(ctx context.Context, id primitive.ObjectID, version int64, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Watch opens a change stream over the collection for the live feed.
	Watch(ctx context.Context) (*mongo.ChangeStream, error)
}

type customerRepo struct{ col *mongo.Collection }

func NewCustomerRepository(db *mongo.Database) CustomerRepository {
	return &customerRepo{col: db.Collection(infra.ColCustomers)}
}

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *customerRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	var c model.Customer
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *customerRepo) FindByTC(ctx context.Context, tc string) (*model.Customer, error) {
	var c model.Customer
	err := r.col.FindOne(ctx, bson.M{"tc": tc}).Decode(&c)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var customers []model.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) UpdateBalance(ctx context.Context, id primitive.ObjectID, version int64, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "version": version},
		bson.M{"$set": fields, "$inc": bson.M{"version": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoMatch
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *customerRepo) Watch(ctx context.Context) (*mongo.ChangeStream, error) {
	return r.col.Watch(ctx, mongo.Pipeline{},
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
}
