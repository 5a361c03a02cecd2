package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCanceled   = "Canceled"
)

// Order is a durable snapshot of a cart at placement time.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserEmail   string             `bson:"user_email" json:"user_email"`
	Items       []CartItem         `bson:"items" json:"items"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// ValidTransition is the single source of truth for the order status
// graph: Processing -> Shipped -> Delivered, plus Processing -> Canceled.
// Delivered and Canceled are terminal. User-facing cancellation enforces
// this; the admin status update validates the enum only and bypasses the
// graph on purpose.
func ValidTransition(from, to string) bool {
	switch from {
	case StatusProcessing:
		return to == StatusShipped || to == StatusCanceled
	case StatusShipped:
		return to == StatusDelivered
	}
	return false
}
