package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	// Create returns ErrDuplicate when the username or email is taken.
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDs returns the users found; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	IncrementExercisesCompleted(ctx context.Context, id primitive.ObjectID) (int, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	// Random returns ErrNotFound when the catalog is empty.
	Random(ctx context.Context) (*domain.Exercise, error)
}

// PostRepository defines the interface for community posts and their comments.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	// ListByAuthors returns the newest posts first.
	ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, limit int) ([]domain.Post, error)
	// AddLike reports false when userID already liked the post.
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	// RemoveLike reports false when userID had not liked the post.
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) (bool, error)
	AddComment(ctx context.Context, postID primitive.ObjectID, comment domain.Comment) error
	RemoveComment(ctx context.Context, postID, commentID primitive.ObjectID) error
}

// FriendshipRepository defines the interface for friend requests.
type FriendshipRepository interface {
	Create(ctx context.Context, friendship *domain.Friendship) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Friendship, error)
	// FindBetween returns the newest non-rejected request between a and b in either direction.
	FindBetween(ctx context.Context, a, b primitive.ObjectID) (*domain.Friendship, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Friendship, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.FriendshipStatus) error
}

// ChallengeRepository defines the interface for friend challenges.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error)
	// ListByUser returns challenges sent or received by userID, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Challenge, error)
	// FindActiveForRecipient returns ErrNotFound when userID has no active challenge at now.
	FindActiveForRecipient(ctx context.Context, userID primitive.ObjectID, now time.Time) (*domain.Challenge, error)
	CountCompletedByRecipient(ctx context.Context, userID primitive.ObjectID) (int, error)
	Update(ctx context.Context, challenge *domain.Challenge) error
}

// JournalFilter selects one page of a user's journal.
type JournalFilter struct {
	UserID primitive.ObjectID
	From   *time.Time
	To     *time.Time
	Skip   int
	Limit  int
}

// JournalRepository defines the interface for journal entries. Every method is
// scoped to the owning user.
type JournalRepository interface {
	Create(ctx context.Context, entry *domain.JournalEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.JournalEntry, error)
	// List returns the page (newest date first) and the total matching count.
	List(ctx context.Context, filter JournalFilter) ([]domain.JournalEntry, int64, error)
	Update(ctx context.Context, entry *domain.JournalEntry) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// TrackRepository defines the interface for white-noise track metadata.
type TrackRepository interface {
	Create(ctx context.Context, track *domain.Track) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Track, error)
	List(ctx context.Context) ([]domain.Track, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Repositories bundles one implementation of every repository.
type Repositories struct {
	Users       UserRepository
	Exercises   ExerciseRepository
	Posts       PostRepository
	Friendships FriendshipRepository
	Challenges  ChallengeRepository
	Journal     JournalRepository
	Tracks      TrackRepository
}
