package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductCategories is the fixed set of values the category field accepts.
var ProductCategories = []string{"排球衣", "排球褲", "排球襪", "排球鞋", "球具", "配件"}

// Product represents a document in the `products` collection.  Image holds
// the path produced by the upload side channel, not the file itself.  Sell
// controls whether the product shows up on the public listing.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Sell        bool               `bson:"sell" json:"sell"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
