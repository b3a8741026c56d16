package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rechilab/volley-backend/internal/model"
)

// ProductRepo persists products in the `products` collection.
type ProductRepo struct{ C *mongo.Collection }

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{C: db.Collection("products")}
}

// Create inserts a new product with fresh timestamps.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.C.InsertOne(ctx, p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// FindByID fetches a single product.
func (r *ProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (model.Product, error) {
	var p model.Product
	err := r.C.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrNotFound
	}
	return p, err
}

// FindByIDs fetches the products referenced by a cart in one query.
// Missing ids are simply absent from the result.
func (r *ProductRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	cur, err := r.C.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	out := []model.Product{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List searches name and description with the query's regex and returns one
// page of products plus a total.
//
// The two totals are intentionally different: the admin listing reports the
// approximate whole-collection count, while the public listing counts only
// sell:true documents and ignores the text search.  Both mirror the
// behavior the frontend was built against.
func (r *ProductRepo) List(ctx context.Context, q ListQuery, sellOnly bool) ([]model.Product, int64, error) {
	filter := q.SearchFilter("name", "description")
	if sellOnly {
		filter["sell"] = true
	}
	cur, err := r.C.Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	data := []model.Product{}
	if err := cur.All(ctx, &data); err != nil {
		return nil, 0, err
	}

	var total int64
	if sellOnly {
		total, err = r.C.CountDocuments(ctx, bson.M{"sell": true})
	} else {
		total, err = r.C.EstimatedDocumentCount(ctx)
	}
	if err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

// Update applies a partial $set update.  Fields must already be validated;
// ErrNotFound is returned when no product matches the id.
func (r *ProductRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
