package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"password,omitempty"`
	Role            string             `bson:"role" json:"role"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
	ResetKey        string             `bson:"reset_key,omitempty" json:"-"`
	ResetKeyExpires time.Time          `bson:"reset_key_expires,omitempty" json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the two enumerated values.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
