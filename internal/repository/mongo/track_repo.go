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

const trackCollectionName = "white_noise_tracks"

// mongoTrackRepository implements repository.TrackRepository
type mongoTrackRepository struct {
	collection *mongo.Collection
}

// NewMongoTrackRepository creates a new Track repository.
func NewMongoTrackRepository(db *mongo.Database) repository.TrackRepository {
	return &mongoTrackRepository{
		collection: db.Collection(trackCollectionName),
	}
}

// Create inserts metadata for an uploaded audio file.
func (r *mongoTrackRepository) Create(ctx context.Context, track *domain.Track) (primitive.ObjectID, error) {
	if track.Name == "" || track.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("track requires name and objectKey")
	}
	track.ID = primitive.NewObjectID()
	track.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, track)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoTrackRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Track, error) {
	var track domain.Track
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&track)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &track, nil
}

// List returns the tracks sorted by name.
func (r *mongoTrackRepository) List(ctx context.Context) ([]domain.Track, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tracks := []domain.Track{}
	if err = cursor.All(ctx, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Delete removes an upload record by its ID.
func (r *mongoTrackRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrackIndexes creates necessary indexes for the tracks collection.
func EnsureTrackIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}
