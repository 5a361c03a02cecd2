package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (user, product) line in a cart. Name and price are
// snapshotted from the product at add time; order totals are computed
// from the snapshot, not the live price.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}
