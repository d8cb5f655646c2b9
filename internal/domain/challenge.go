package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeStatus type for the friend challenge lifecycle
type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "pending"
	ChallengeAccepted  ChallengeStatus = "accepted"
	ChallengeDeclined  ChallengeStatus = "declined"
	ChallengeCompleted ChallengeStatus = "completed"
)

const (
	DefaultChallengeDays = 7
	MinChallengeDays     = 1
	MaxChallengeDays     = 30
)

// Challenge is sent by FromUser to ToUser, optionally tied to a catalog exercise.
// ExerciseSnapshot is captured at creation so the challenge still renders if the
// exercise is later removed or edited.
type Challenge struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	FromUserID       primitive.ObjectID  `bson:"fromUser" json:"fromUser"`
	ToUserID         primitive.ObjectID  `bson:"toUser" json:"toUser"`
	ExerciseID       *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseSnapshot *ExerciseSnapshot   `bson:"exerciseSnapshot,omitempty" json:"exerciseSnapshot,omitempty"`
	Message          string              `bson:"message,omitempty" json:"message,omitempty"`
	Status           ChallengeStatus     `bson:"status" json:"status"`
	IsComplete       bool                `bson:"isComplete" json:"isComplete"`
	DurationDays     int                 `bson:"durationDays" json:"durationDays"`
	AcceptedAt       *time.Time          `bson:"acceptedAt,omitempty" json:"acceptedAt,omitempty"`
	CompletedAt      *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	Deadline         *time.Time          `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsActive reports whether the challenge is accepted, not complete and not past its deadline.
func (c *Challenge) IsActive(now time.Time) bool {
	if c.Status != ChallengeAccepted || c.IsComplete {
		return false
	}
	return c.Deadline == nil || now.Before(*c.Deadline)
}

// Expired reports whether an accepted challenge ran out of time before completion.
func (c *Challenge) Expired(now time.Time) bool {
	return c.Status == ChallengeAccepted && !c.IsComplete && c.Deadline != nil && !now.Before(*c.Deadline)
}
