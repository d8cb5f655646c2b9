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

const friendshipCollectionName = "friendships"

type mongoFriendshipRepository struct {
	collection *mongo.Collection
}

// NewMongoFriendshipRepository creates a new Friendship repository backed by MongoDB.
func NewMongoFriendshipRepository(db *mongo.Database) repository.FriendshipRepository {
	return &mongoFriendshipRepository{
		collection: db.Collection(friendshipCollectionName),
	}
}

func (r *mongoFriendshipRepository) Create(ctx context.Context, friendship *domain.Friendship) (primitive.ObjectID, error) {
	if friendship.RequesterID == primitive.NilObjectID || friendship.RecipientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("friendship requires requester and recipient")
	}

	friendship.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	friendship.CreatedAt = now
	friendship.UpdatedAt = now
	if friendship.Status == "" {
		friendship.Status = domain.FriendshipPending
	}

	result, err := r.collection.InsertOne(ctx, friendship)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoFriendshipRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Friendship, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

func (r *mongoFriendshipRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*domain.Friendship, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"requester": a, "recipient": b},
			bson.M{"requester": b, "recipient": a},
		},
		"status": bson.M{"$ne": domain.FriendshipRejected},
	}
	return r.findOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *mongoFriendshipRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.Friendship, error) {
	var friendship domain.Friendship
	var err error
	if opts != nil {
		err = r.collection.FindOne(ctx, filter, opts).Decode(&friendship)
	} else {
		err = r.collection.FindOne(ctx, filter).Decode(&friendship)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// ListByUser returns every request the user sent or received, newest first.
func (r *mongoFriendshipRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Friendship, error) {
	filter := bson.M{"$or": bson.A{bson.M{"requester": userID}, bson.M{"recipient": userID}}}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	friendships := []domain.Friendship{}
	if err = cursor.All(ctx, &friendships); err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *mongoFriendshipRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.FriendshipStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureFriendshipIndexes creates necessary indexes for the friendships collection.
func EnsureFriendshipIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "requester", Value: 1}, {Key: "recipient", Value: 1}}},
		{Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "status", Value: 1}}},
	})
}
