// Package model holds the JSON shapes of the backend contract. Ids are opaque
// strings here; the web app never interprets them.
package model

import (
	"shukuma/webapp/internal/domain"
)

// User is the public, populated form of an account.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ErrorBody is the error payload used by the backend and by the proxy.
type ErrorBody struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Exercise struct {
	ID            string              `json:"_id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Type          domain.ExerciseType `json:"type,omitempty"`
	Difficulty    domain.Difficulty   `json:"difficulty,omitempty"`
	Duration      *int                `json:"duration,omitempty"`
	Reps          *int                `json:"reps,omitempty"`
	Demonstration string              `json:"demonstration,omitempty"`
}

type CreateExerciseRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description"`
	Type          domain.ExerciseType `json:"type" binding:"required,oneof=core lowerbody cardio upperbody"`
	Difficulty    domain.Difficulty   `json:"difficulty" binding:"required,oneof=easy medium hard"`
	Duration      *int                `json:"duration" binding:"omitempty,min=1"`
	Reps          *int                `json:"reps" binding:"omitempty,min=1"`
	Demonstration string              `json:"demonstration" binding:"omitempty,url"`
}

type Track struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Duration int    `json:"duration,omitempty"` // seconds
}

type TrackUploadRequest struct {
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	Duration    int    `json:"duration" binding:"omitempty,min=0"`
}

type TrackUploadResponse struct {
	Track     Track  `json:"track"`
	UploadURL string `json:"uploadUrl"`
}

type CompletionResponse struct {
	Message            string `json:"message"`
	ExercisesCompleted int    `json:"exercisesCompleted"`
}

// MessageResponse is returned by mutations whose result the client refetches anyway.
type MessageResponse struct {
	Message string `json:"message"`
}
