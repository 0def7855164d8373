package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	OwnerName string `bson:"-" json:"ownerName,omitempty"`
}
