package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the system. Email is the unique key.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Verified  bool               `bson:"verified" json:"verified"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ProfileUpdate carries the optional profile fields a user may change.
// Empty fields are left untouched.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Empty reports whether the update would change nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == "" && p.Phone == "" && p.Address == ""
}
