package model

import (
	"bytes"
	"encoding/json"
	"time"

	"shukuma/webapp/internal/domain"
)

type Comment struct {
	ID        string    `json:"_id"`
	Author    User      `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a feed entry with its author and comment authors populated.
type Post struct {
	ID        string    `json:"_id"`
	Author    User      `json:"userId"`
	Content   string    `json:"content"`
	Type      string    `json:"type,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FriendRequest struct {
	ID        string                  `json:"_id"`
	Requester User                    `json:"requester"`
	Recipient User                    `json:"recipient"`
	Status    domain.FriendshipStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
}

// ExerciseRef is a challenge's exerciseId field. The backend sends it populated
// (an object), unpopulated (a bare id string) or not at all.
type ExerciseRef struct {
	ID       string
	Exercise *Exercise
}

func (r *ExerciseRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &r.ID)
	}
	var ex Exercise
	if err := json.Unmarshal(b, &ex); err != nil {
		return err
	}
	r.ID = ex.ID
	r.Exercise = &ex
	return nil
}

func (r ExerciseRef) MarshalJSON() ([]byte, error) {
	if r.Exercise != nil {
		return json.Marshal(r.Exercise)
	}
	if r.ID != "" {
		return json.Marshal(r.ID)
	}
	return []byte("null"), nil
}

// Populated returns the populated exercise, or nil when only an id (or nothing) was sent.
func (r *ExerciseRef) Populated() *Exercise {
	if r == nil {
		return nil
	}
	return r.Exercise
}

type Challenge struct {
	ID               string                   `json:"_id"`
	FromUser         User                     `json:"fromUser"`
	ToUser           User                     `json:"toUser"`
	ExerciseID       *ExerciseRef             `json:"exerciseId,omitempty"`
	ExerciseSnapshot *domain.ExerciseSnapshot `json:"exerciseSnapshot,omitempty"`
	Message          string                   `json:"message,omitempty"`
	Status           domain.ChallengeStatus   `json:"status"`
	IsComplete       bool                     `json:"isComplete"`
	DurationDays     int                      `json:"durationDays"`
	AcceptedAt       *time.Time               `json:"acceptedAt,omitempty"`
	CompletedAt      *time.Time               `json:"completedAt,omitempty"`
	Deadline         *time.Time               `json:"deadline,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// ProfileRelation is the viewer's relationship to a profile, computed by the backend.
type ProfileRelation string

const (
	RelationNone       ProfileRelation = "none"
	RelationPending    ProfileRelation = "pending"
	RelationAccepted   ProfileRelation = "accepted"
	RelationCanRequest ProfileRelation = "can_request"
	RelationCanAccept  ProfileRelation = "can_accept"
	RelationSelf       ProfileRelation = "self"
)

type Profile struct {
	User                User            `json:"user"`
	Friends             []User          `json:"friends"`
	FriendCount         int             `json:"friendCount"`
	ExercisesCompleted  int             `json:"exercisesCompleted"`
	CurrentStreak       int             `json:"currentStreak"`
	CompletedChallenges int             `json:"completedChallenges"`
	FriendRequestStatus ProfileRelation `json:"friendRequestStatus"`
}

// --- Request bodies ---

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
	Type    string `json:"type"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type FriendRequestBody struct {
	Username string `json:"username" binding:"required"`
}

type FriendAcceptBody struct {
	RequestID string `json:"requestId" binding:"required"`
	Accept    bool   `json:"accept"`
}

type ChallengeRequest struct {
	ToUserID     string `json:"toUserId" binding:"required"`
	ExerciseID   string `json:"exerciseId,omitempty"`
	Message      string `json:"message,omitempty"`
	DurationDays int    `json:"durationDays,omitempty"`
}

type ChallengeRespondBody struct {
	ChallengeID string `json:"challengeId" binding:"required"`
	Accept      bool   `json:"accept"`
}

type ChallengeCompleteBody struct {
	ChallengeID string `json:"challengeId" binding:"required"`
}
