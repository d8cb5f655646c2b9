package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Track stores metadata about a white-noise audio file. The file itself lives in S3.
type Track struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	ObjectKey   string             `bson:"objectKey" json:"-"` // Key in the S3 bucket - internal use
	ContentType string             `bson:"contentType" json:"contentType"`
	Duration    int                `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
