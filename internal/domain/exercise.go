// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType groups catalog exercises by body area.
type ExerciseType string

const (
	ExerciseCore      ExerciseType = "core"
	ExerciseLowerBody ExerciseType = "lowerbody"
	ExerciseCardio    ExerciseType = "cardio"
	ExerciseUpperBody ExerciseType = "upperbody"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseCore, ExerciseLowerBody, ExerciseCardio, ExerciseUpperBody:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Exercise represents a single exercise definition in the public catalog.
// Exactly one of Duration (seconds) or Reps is expected to be meaningful.
type Exercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Type          ExerciseType       `bson:"type" json:"type"`
	Difficulty    Difficulty         `bson:"difficulty" json:"difficulty"`
	Duration      *int               `bson:"duration,omitempty" json:"duration,omitempty"`
	Reps          *int               `bson:"reps,omitempty" json:"reps,omitempty"`
	Demonstration string             `bson:"demonstration,omitempty" json:"demonstration,omitempty"` // URL to a demo video or image
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Snapshot copies the fields a challenge keeps even if the catalog entry changes later.
func (e *Exercise) Snapshot() *ExerciseSnapshot {
	if e == nil {
		return nil
	}
	return &ExerciseSnapshot{
		Name:        e.Name,
		Description: e.Description,
		Type:        e.Type,
		Difficulty:  e.Difficulty,
		Duration:    e.Duration,
		Reps:        e.Reps,
	}
}

// ExerciseSnapshot is a denormalized copy of an Exercise embedded in a Challenge.
type ExerciseSnapshot struct {
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	Type        ExerciseType `bson:"type,omitempty" json:"type,omitempty"`
	Difficulty  Difficulty   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	Duration    *int         `bson:"duration,omitempty" json:"duration,omitempty"`
	Reps        *int         `bson:"reps,omitempty" json:"reps,omitempty"`
}
