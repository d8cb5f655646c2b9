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

const postCollectionName = "posts"

// mongoPostRepository implements repository.PostRepository. Comments are
// embedded in the post document.
type mongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new Post repository backed by MongoDB.
func NewMongoPostRepository(db *mongo.Database) repository.PostRepository {
	return &mongoPostRepository{
		collection: db.Collection(postCollectionName),
	}
}

// Create inserts a new post.
func (r *mongoPostRepository) Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error) {
	if post.UserID == primitive.NilObjectID || post.Content == "" {
		return primitive.NilObjectID, errors.New("post requires an author and content")
	}

	post.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []domain.Comment{}
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a post by its ID.
func (r *mongoPostRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var post domain.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListByAuthors returns the newest posts written by any of authorIDs.
func (r *mongoPostRepository) ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, limit int) ([]domain.Post, error) {
	posts := []domain.Post{}
	if len(authorIDs) == 0 {
		return posts, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"userId": bson.M{"$in": authorIDs}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AddLike adds userID to the like set; the filter makes it a no-op when already present.
func (r *mongoPostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": postID, "likes": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"likes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateLikes(ctx, postID, filter, update)
}

// RemoveLike removes userID from the like set.
func (r *mongoPostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": postID, "likes": userID}
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.updateLikes(ctx, postID, filter, update)
}

func (r *mongoPostRepository) updateLikes(ctx context.Context, postID primitive.ObjectID, filter, update bson.M) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount > 0 {
		return true, nil
	}
	// Distinguish a missing post from a like-state mismatch.
	if _, err := r.GetByID(ctx, postID); err != nil {
		return false, err
	}
	return false, nil
}

// AddComment appends a comment to the post.
func (r *mongoPostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) error {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// RemoveComment pulls the comment with commentID out of the post.
func (r *mongoPostRepository) RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error {
	filter := bson.M{"_id": postID, "comments._id": commentID}
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsurePostIndexes creates necessary indexes for the posts collection.
func EnsurePostIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	})
}
