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

// AppointmentRepo persists court time slots in the `appointments` collection.
type AppointmentRepo struct{ C *mongo.Collection }

func NewAppointmentRepo(db *mongo.Database) *AppointmentRepo {
	return &AppointmentRepo{C: db.Collection("appointments")}
}

// Create inserts a new appointment with fresh timestamps.
func (r *AppointmentRepo) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Info == nil {
		a.Info = []string{}
	}
	if _, err := r.C.InsertOne(ctx, a); err != nil {
		return model.Appointment{}, err
	}
	return a, nil
}

// FindByID fetches a single appointment.
func (r *AppointmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (model.Appointment, error) {
	var a model.Appointment
	err := r.C.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Appointment{}, ErrNotFound
	}
	return a, err
}

// FindByDate returns every appointment whose stored date matches exactly.
// Dates are normalized to the 08:00 boundary before both store and lookup,
// so an exact equality match is sufficient.
func (r *AppointmentRepo) FindByDate(ctx context.Context, date time.Time) ([]model.Appointment, error) {
	cur, err := r.C.Find(ctx, bson.M{"date": date})
	if err != nil {
		return nil, err
	}
	out := []model.Appointment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List searches the height and info fields with the query's regex and
// returns one page plus a total.  Totals follow the same split as products:
// whole-collection estimate for the admin view, online-only count for the
// public view (the text search is deliberately not counted).
func (r *AppointmentRepo) List(ctx context.Context, q ListQuery, onlineOnly bool) ([]model.Appointment, int64, error) {
	filter := q.SearchFilter("height", "info")
	if onlineOnly {
		filter["online"] = true
	}
	cur, err := r.C.Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	data := []model.Appointment{}
	if err := cur.All(ctx, &data); err != nil {
		return nil, 0, err
	}

	var total int64
	if onlineOnly {
		total, err = r.C.CountDocuments(ctx, bson.M{"online": true})
	} else {
		total, err = r.C.EstimatedDocumentCount(ctx)
	}
	if err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

// Update applies a partial $set update; ErrNotFound when nothing matches.
func (r *AppointmentRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
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
