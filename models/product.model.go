package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog entry. Name doubles as the key for
// admin update/delete operations.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int                `bson:"stock" json:"stock"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
}
