package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
)

const challengeCollectionName = "challenges"

// mongoChallengeRepository implements repository.ChallengeRepository
type mongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates a new Challenge repository.
func NewMongoChallengeRepository(db *mongo.Database) repository.ChallengeRepository {
	return &mongoChallengeRepository{
		collection: db.Collection(challengeCollectionName),
	}
}

// Create inserts a new challenge.
func (r *mongoChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error) {
	if challenge.FromUserID == primitive.NilObjectID || challenge.ToUserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("challenge requires fromUser and toUser")
	}
	challenge.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	challenge.CreatedAt = now
	challenge.UpdatedAt = now
	if challenge.Status == "" {
		challenge.Status = domain.ChallengePending
	}

	result, err := r.collection.InsertOne(ctx, challenge)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a single challenge by its ID.
func (r *mongoChallengeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// ListByUser returns the challenges the user sent or received.
func (r *mongoChallengeRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Challenge, error) {
	filter := bson.M{"$or": bson.A{bson.M{"fromUser": userID}, bson.M{"toUser": userID}}}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	challenges := []domain.Challenge{}
	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, nil
}

// FindActiveForRecipient returns the accepted, incomplete challenge whose deadline is after now.
func (r *mongoChallengeRepository) FindActiveForRecipient(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.Challenge, error) {
	filter := bson.M{
		"toUser":     userID,
		"status":     domain.ChallengeAccepted,
		"isComplete": false,
		"$or": bson.A{
			bson.M{"deadline": nil},
			bson.M{"deadline": bson.M{"$gt": now}},
		},
	}
	var challenge domain.Challenge
	err := r.collection.FindOne(ctx, filter).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

func (r *mongoChallengeRepository) CountCompletedByRecipient(ctx context.Context, userID primitive.ObjectID) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"toUser": userID, "status": domain.ChallengeCompleted})
	return int(n), err
}

// Update writes the mutable lifecycle fields of a challenge.
func (r *mongoChallengeRepository) Update(ctx context.Context, challenge *domain.Challenge) error {
	if challenge.ID == primitive.NilObjectID {
		return errors.New("challenge ID is required for update")
	}
	challenge.UpdatedAt = time.Now().UTC()
	updateDoc := bson.M{
		"$set": bson.M{
			"status":      challenge.Status,
			"isComplete":  challenge.IsComplete,
			"acceptedAt":  challenge.AcceptedAt,
			"completedAt": challenge.CompletedAt,
			"deadline":    challenge.Deadline,
			"updatedAt":   challenge.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": challenge.ID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureChallengeIndexes creates necessary indexes for the challenges collection.
func EnsureChallengeIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "fromUser", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "toUser", Value: 1}, {Key: "status", Value: 1}}},
	})
}
