package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListQuery carries the pagination, sort and search parameters shared by the
// product and appointment listings.  ItemsPerPage of -1 means unlimited.
type ListQuery struct {
	SortBy       string
	SortOrder    int // 1 ascending, -1 descending
	ItemsPerPage int
	Page         int
	Search       string
}

// FindOptions builds the driver options for the query: sort by the chosen
// field and direction, then skip/limit according to the page.  When
// ItemsPerPage is -1 no skip or limit is applied and every match comes back.
func (q ListQuery) FindOptions() *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: q.SortBy, Value: q.SortOrder}})
	if q.ItemsPerPage > 0 {
		opts.SetSkip(int64((q.Page - 1) * q.ItemsPerPage))
		opts.SetLimit(int64(q.ItemsPerPage))
	}
	return opts
}

// SearchFilter returns a case-insensitive regex $or across the given text
// fields.  An empty search matches everything, mirroring an empty regex.
func (q ListQuery) SearchFilter(fields ...string) bson.M {
	regex := primitive.Regex{Pattern: q.Search, Options: "i"}
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: regex})
	}
	return bson.M{"$or": or}
}
