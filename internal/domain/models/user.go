// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	StatusActive   = "active"
	StatusDisabled = "disabled"

	AuthMethodInternal = "internal"
	AuthMethodGoogle   = "google"
)

// User represents an account in the user store.
//
// NOTE:
//   - PasswordHash is a bcrypt hash and is never serialized to JSON.
//   - UsernameCI is the lowercase, trimmed form used for uniqueness and lookup.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	UsernameCI string             `bson:"username_ci" json:"-"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	AuthMethod string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // internal | google
	Role       string             `bson:"role" json:"role"`                                   // admin | user
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`           // active | disabled

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
