package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an operator account. Role: "operator" | "admin".
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Name         string             `bson:"name"`
	Email        *string            `bson:"email,omitempty"`
	PasswordHash string             `bson:"passwordHash"`
	Role         string             `bson:"role"`
	Active       bool               `bson:"active"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
