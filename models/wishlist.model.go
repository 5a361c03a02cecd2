package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistItem is one (user, product) association, unique per pair.
type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
}
