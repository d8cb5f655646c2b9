package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username     string             `bson:"username" json:"username"` // Unique, used for friend requests and profile URLs
	Email        string             `bson:"email" json:"email"`       // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Incremented every time the user completes a catalog exercise.
	ExercisesCompleted int `bson:"exercisesCompleted" json:"exercisesCompleted"`
}
