package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

// FeedLimit caps the number of posts returned by Feed.
const FeedLimit = 50

// --- Error Definitions ---
var (
	ErrContentRequired = errors.New("content is required")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post not liked yet")
	ErrCommentAccess   = errors.New("not allowed to delete this comment")

	ErrUsernameRequired     = errors.New("username is required")
	ErrSelfFriendRequest    = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends       = errors.New("already friends")
	ErrFriendRequestExists  = errors.New("friend request already pending")
	ErrFriendRequestMissing = errors.New("friend request not found")
	ErrFriendRequestAccess  = errors.New("only the recipient can respond to a friend request")
	ErrFriendRequestHandled = errors.New("friend request already handled")

	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrSelfChallenge      = errors.New("cannot challenge yourself")
	ErrNotFriends         = errors.New("can only challenge friends")
	ErrInvalidDuration    = errors.New("duration must be between 1 and 30 days")
	ErrActiveChallenge    = errors.New("user already has an active challenge")
	ErrChallengeAccess    = errors.New("only the challenged user can do this")
	ErrChallengeResponded = errors.New("challenge already responded to")
	ErrChallengeNotActive = errors.New("challenge is not active")
	ErrChallengeExpired   = errors.New("challenge has expired")
)

// ChallengeInput carries a new challenge. A zero DurationDays means the default.
type ChallengeInput struct {
	ToUserID     primitive.ObjectID
	ExerciseID   *primitive.ObjectID
	Message      string
	DurationDays int
}

// CommunityService owns posts, friendships, challenges and profiles.
type CommunityService interface {
	Feed(ctx context.Context, viewerID primitive.ObjectID) ([]model.Post, error)
	CreatePost(ctx context.Context, viewerID primitive.ObjectID, content, postType string) (*model.Post, error)
	Like(ctx context.Context, viewerID, postID primitive.ObjectID) error
	Unlike(ctx context.Context, viewerID, postID primitive.ObjectID) error
	Comments(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error)
	AddComment(ctx context.Context, viewerID, postID primitive.ObjectID, content string) (*model.Comment, error)
	DeleteComment(ctx context.Context, viewerID, postID, commentID primitive.ObjectID) error

	Friends(ctx context.Context, viewerID primitive.ObjectID) ([]model.FriendRequest, error)
	SendFriendRequest(ctx context.Context, viewerID primitive.ObjectID, username string) (*model.FriendRequest, error)
	RespondFriendRequest(ctx context.Context, viewerID, requestID primitive.ObjectID, accept bool) error

	Challenges(ctx context.Context, viewerID primitive.ObjectID) ([]model.Challenge, error)
	ActiveChallenge(ctx context.Context, viewerID primitive.ObjectID) (*model.Challenge, error)
	SendChallenge(ctx context.Context, viewerID primitive.ObjectID, in ChallengeInput) (*model.Challenge, error)
	RespondChallenge(ctx context.Context, viewerID, challengeID primitive.ObjectID, accept bool) (*model.Challenge, error)
	CompleteChallenge(ctx context.Context, viewerID, challengeID primitive.ObjectID) (*model.Challenge, error)

	Profile(ctx context.Context, viewerID primitive.ObjectID, username string) (*model.Profile, error)
}

type communityService struct {
	userRepo       repository.UserRepository
	exerciseRepo   repository.ExerciseRepository
	postRepo       repository.PostRepository
	friendshipRepo repository.FriendshipRepository
	challengeRepo  repository.ChallengeRepository

	// challengeMu serialises challenge transitions so the one-active-challenge
	// check and the write that follows it cannot interleave.
	challengeMu sync.Mutex
	now         func() time.Time
}

// NewCommunityService creates a new instance of communityService.
func NewCommunityService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	postRepo repository.PostRepository,
	friendshipRepo repository.FriendshipRepository,
	challengeRepo repository.ChallengeRepository,
) CommunityService {
	return &communityService{
		userRepo:       userRepo,
		exerciseRepo:   exerciseRepo,
		postRepo:       postRepo,
		friendshipRepo: friendshipRepo,
		challengeRepo:  challengeRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// --- Posts ---

// Feed returns the viewer's and their friends' posts, newest first.
func (s *communityService) Feed(ctx context.Context, viewerID primitive.ObjectID) ([]model.Post, error) {
	friendIDs, err := s.friendIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthors(ctx, append(friendIDs, viewerID), FeedLimit)
	if err != nil {
		return nil, err
	}
	dir, err := loadUsers(ctx, s.userRepo, postAuthors(posts))
	if err != nil {
		return nil, err
	}
	out := make([]model.Post, 0, len(posts))
	for i := range posts {
		out = append(out, dir.post(&posts[i]))
	}
	return out, nil
}

func (s *communityService) CreatePost(ctx context.Context, viewerID primitive.ObjectID, content, postType string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if postType == "" {
		postType = domain.PostTypeGeneral
	}
	post := &domain.Post{UserID: viewerID, Content: content, Type: postType}
	if _, err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	dir, err := loadUsers(ctx, s.userRepo, []primitive.ObjectID{viewerID})
	if err != nil {
		return nil, err
	}
	out := dir.post(post)
	return &out, nil
}

func (s *communityService) Like(ctx context.Context, viewerID, postID primitive.ObjectID) error {
	added, err := s.postRepo.AddLike(ctx, postID, viewerID)
	if err != nil {
		return postError(err)
	}
	if !added {
		return ErrAlreadyLiked
	}
	return nil
}

func (s *communityService) Unlike(ctx context.Context, viewerID, postID primitive.ObjectID) error {
	removed, err := s.postRepo.RemoveLike(ctx, postID, viewerID)
	if err != nil {
		return postError(err)
	}
	if !removed {
		return ErrNotLiked
	}
	return nil
}

func (s *communityService) Comments(ctx context.Context, postID primitive.ObjectID) ([]model.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, postError(err)
	}
	dir, err := loadUsers(ctx, s.userRepo, postAuthors([]domain.Post{*post}))
	if err != nil {
		return nil, err
	}
	out := make([]model.Comment, 0, len(post.Comments))
	for _, c := range post.Comments {
		out = append(out, dir.comment(c))
	}
	return out, nil
}

func (s *communityService) AddComment(ctx context.Context, viewerID, postID primitive.ObjectID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	comment := domain.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    viewerID,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, postError(err)
	}
	dir, err := loadUsers(ctx, s.userRepo, []primitive.ObjectID{viewerID})
	if err != nil {
		return nil, err
	}
	out := dir.comment(comment)
	return &out, nil
}

// DeleteComment is allowed to the comment's author and to the post's author.
func (s *communityService) DeleteComment(ctx context.Context, viewerID, postID, commentID primitive.ObjectID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return postError(err)
	}
	comment := post.FindComment(commentID)
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.UserID != viewerID && post.UserID != viewerID {
		return ErrCommentAccess
	}
	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

func postError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}
