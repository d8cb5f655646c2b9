package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostTypeGeneral is the type used for free-form posts shared from the feed.
const PostTypeGeneral = "general"

// Post is a community feed entry. Likes is a set of user ids; Comments keeps insertion order.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID   `bson:"userId" json:"userId"` // Author
	Content   string               `bson:"content" json:"content"`
	Type      string               `bson:"type,omitempty" json:"type,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment returns the comment with the given id, or nil.
func (p *Post) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// Comment is owned by a Post.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"` // Author
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
