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

const journalCollectionName = "journal_entries"

type mongoJournalRepository struct {
	collection *mongo.Collection
}

// NewMongoJournalRepository creates a new JournalEntry repository.
func NewMongoJournalRepository(db *mongo.Database) repository.JournalRepository {
	return &mongoJournalRepository{
		collection: db.Collection(journalCollectionName),
	}
}

func (r *mongoJournalRepository) Create(ctx context.Context, entry *domain.JournalEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("journal entry requires a user")
	}
	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

func (r *mongoJournalRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mongoJournalRepository) List(ctx context.Context, filter repository.JournalFilter) ([]domain.JournalEntry, int64, error) {
	query := bson.M{"userId": filter.UserID}
	if filter.From != nil || filter.To != nil {
		dateRange := bson.M{}
		if filter.From != nil {
			dateRange["$gte"] = *filter.From
		}
		if filter.To != nil {
			dateRange["$lte"] = *filter.To
		}
		query["date"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	if int64(filter.Skip) >= total {
		return []domain.JournalEntry{}, total, nil
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}})
	if filter.Skip > 0 {
		findOptions.SetSkip(int64(filter.Skip))
	}
	if filter.Limit > 0 {
		findOptions.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	entries := []domain.JournalEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Update rewrites the editable fields; the owner filter keeps users out of each other's journals.
func (r *mongoJournalRepository) Update(ctx context.Context, entry *domain.JournalEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	updateDoc := bson.M{
		"$set": bson.M{
			"date":      entry.Date,
			"title":     entry.Title,
			"content":   entry.Content,
			"mood":      entry.Mood,
			"tags":      entry.Tags,
			"updatedAt": entry.UpdatedAt,
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID, "userId": entry.UserID}, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoJournalRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureJournalIndexes creates necessary indexes for the journal collection.
func EnsureJournalIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
	})
}
