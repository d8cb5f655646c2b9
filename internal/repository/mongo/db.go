package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shukuma/webapp/internal/repository"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// ConnectDB dials MongoDB and pings the primary before handing the client back.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection used by the backend.
// Failures are logged; the server can run without them.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	EnsureUserIndexes(ctx, db.Collection(userCollectionName))
	EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName))
	EnsurePostIndexes(ctx, db.Collection(postCollectionName))
	EnsureFriendshipIndexes(ctx, db.Collection(friendshipCollectionName))
	EnsureChallengeIndexes(ctx, db.Collection(challengeCollectionName))
	EnsureJournalIndexes(ctx, db.Collection(journalCollectionName))
	EnsureTrackIndexes(ctx, db.Collection(trackCollectionName))
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// insertedObjectID asserts the id type returned by InsertOne.
func insertedObjectID(result *mongo.InsertOneResult) (primitive.ObjectID, error) {
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return id, nil
}

// NewRepositories returns MongoDB-backed repositories over db.
func NewRepositories(db *mongo.Database) repository.Repositories {
	return repository.Repositories{
		Users:       NewMongoUserRepository(db),
		Exercises:   NewMongoExerciseRepository(db),
		Posts:       NewMongoPostRepository(db),
		Friendships: NewMongoFriendshipRepository(db),
		Challenges:  NewMongoChallengeRepository(db),
		Journal:     NewMongoJournalRepository(db),
		Tracks:      NewMongoTrackRepository(db),
	}
}
