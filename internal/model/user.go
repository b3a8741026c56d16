package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.  Stored as a plain number in the users collection; 0 is a
// regular user and 1 is an administrator.
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// CartItem is one embedded entry of a user's cart: a product reference and
// the quantity the user wants.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// User represents a document in the `users` collection.
//
// Fields:
//  ID        – document identifier.
//  Account   – unique handle, 4 to 12 alphanumeric characters.
//  Email     – unique, format validated.
//  Password  – bcrypt hash; the plaintext never persists.
//  Tokens    – currently valid session JWTs; a token outside this list is
//              rejected even when its signature and expiry check out, which
//              is what makes server-side revocation work.
//  Cart      – embedded cart entries.
//  Role      – RoleUser or RoleAdmin.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Account   string             `bson:"account" json:"account"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Tokens    []string           `bson:"tokens" json:"-"`
	Cart      []CartItem         `bson:"cart" json:"cart"`
	Role      int                `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CartQuantity sums the quantities of every cart entry.  Mirrors the
// cartQuantity virtual the frontend expects.
func (u User) CartQuantity() int {
	total := 0
	for _, item := range u.Cart {
		total += item.Quantity
	}
	return total
}
