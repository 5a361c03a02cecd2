package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RevokedToken records a bearer token string that must be rejected
// regardless of its signature validity. ExpiresAt mirrors the token's own
// expiry so the blacklist's TTL index can drop entries that could no
// longer pass validation anyway.
type RevokedToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Token     string             `bson:"token" json:"-"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}
