package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendshipStatus tracks a friend request through its lifecycle.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a directional friend request from Requester to Recipient.
// Once accepted it doubles as the friendship record itself.
type Friendship struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterID primitive.ObjectID `bson:"requester" json:"requester"`
	RecipientID primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status      FriendshipStatus   `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Involves reports whether userID is either party of the request.
func (f *Friendship) Involves(userID primitive.ObjectID) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}

// Other returns the party that is not userID.
func (f *Friendship) Other(userID primitive.ObjectID) primitive.ObjectID {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}
