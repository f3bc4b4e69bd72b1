package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UUID      string             `bson:"uuid" json:"uuid"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	UserName  string             `bson:"userName" json:"userName"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserPayload is the set of JWT claims attached to every authenticated
// request and websocket connection. UUID is the opaque user identifier
// used for per-user storage partitioning, never the Mongo document id.
type UserPayload struct {
	UUID     string `json:"uuid"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
}
