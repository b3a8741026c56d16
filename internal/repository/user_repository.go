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

// UserRepo persists users in the `users` collection.  Token list mutations
// use single atomic update operators ($push/$pull/positional $set) so
// concurrent logins and logouts from different devices cannot corrupt the
// list; no ordering between them is promised.
type UserRepo struct{ C *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{C: db.Collection("users")}
}

// Create inserts a new user.  The caller supplies an already-hashed
// password.  Unique index violations come back as the duplicate sentinels.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Tokens == nil {
		u.Tokens = []string{}
	}
	if u.Cart == nil {
		u.Cart = []model.CartItem{}
	}
	if _, err := r.C.InsertOne(ctx, u); err != nil {
		return model.User{}, mapDuplicateKey(err)
	}
	return u, nil
}

// FindByEmail fetches a user by email for credential login.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.C.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var u model.User
	err := r.C.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// FindByIDAndToken fetches the user only when the presented token is
// literally in the tokens list.  This is the server-side revocation check:
// a structurally valid JWT that was logged out no longer matches.
func (r *UserRepo) FindByIDAndToken(ctx context.Context, id primitive.ObjectID, token string) (model.User, error) {
	var u model.User
	err := r.C.FindOne(ctx, bson.M{"_id": id, "tokens": token}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// PushToken appends a freshly issued session token to the user's list.
func (r *UserRepo) PushToken(ctx context.Context, id primitive.ObjectID, token string) error {
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"tokens": token},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullToken removes the presented token from the user's list (logout).
func (r *UserRepo) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	_, err := r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{"tokens": token},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

// SwapToken replaces oldToken with newToken in place (sliding-session
// renewal).  The filter requires the old token to still be present, so a
// concurrent logout of the same token makes the swap a no-op ErrNotFound.
func (r *UserRepo) SwapToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) error {
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id, "tokens": oldToken}, bson.M{
		"$set": bson.M{"tokens.$": newToken, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCart overwrites the embedded cart list.  Cart edits are a
// read-modify-write on the user document; concurrent edits of the same cart
// are last-write-wins, matching the single-device usage this models.
func (r *UserRepo) UpdateCart(ctx context.Context, id primitive.ObjectID, cart []model.CartItem) error {
	if cart == nil {
		cart = []model.CartItem{}
	}
	res, err := r.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"cart": cart, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
