// Package community orchestrates the community page: it loads the feed,
// friendships, challenges, active challenge and exercise catalog as
// independent resources and drives every mutation through a full refetch of
// the resources it affects.
package community

import (
	"context"
	"errors"
	"log"

	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/upstream"
)

// Backend is the subset of the backend API the community pages use.
// *upstream.Client implements it.
type Backend interface {
	Feed(ctx context.Context, token string) ([]model.Post, error)
	Friends(ctx context.Context, token string) ([]model.FriendRequest, error)
	Challenges(ctx context.Context, token string) ([]model.Challenge, error)
	ActiveChallenge(ctx context.Context, token string) (*model.Challenge, error)
	Exercises(ctx context.Context) ([]model.Exercise, error)

	CreatePost(ctx context.Context, token string, req model.CreatePostRequest) error
	Like(ctx context.Context, token, postID string) error
	Unlike(ctx context.Context, token, postID string) error
	Comments(ctx context.Context, token, postID string) ([]model.Comment, error)
	AddComment(ctx context.Context, token, postID, content string) error
	DeleteComment(ctx context.Context, token, postID, commentID string) error

	SendFriendRequest(ctx context.Context, token, username string) error
	RespondFriendRequest(ctx context.Context, token, requestID string, accept bool) error

	SendChallenge(ctx context.Context, token string, req model.ChallengeRequest) (*model.Challenge, error)
	RespondChallenge(ctx context.Context, token, challengeID string, accept bool) error
	CompleteChallenge(ctx context.Context, token, challengeID string) error

	Profile(ctx context.Context, token, username string) (*model.Profile, error)
}

var _ Backend = (*upstream.Client)(nil)

// guard ties a page to its session and turns any 401 into a logout.
type guard struct {
	session  *session.Session
	onLogout func()
}

func (g guard) token() (string, error) {
	if g.session == nil || !g.session.Active() {
		return "", ErrNotSignedIn
	}
	return g.session.Token(), nil
}

// require is token for user-initiated entry points: without a session the
// user is sent to log in.
func (g guard) require() (string, error) {
	token, err := g.token()
	if err != nil {
		g.logout()
	}
	return token, err
}

func (g guard) viewerID() string {
	if g.session == nil {
		return ""
	}
	return g.session.UserID()
}

// check passes err through, logging the user out first when it is a 401.
func (g guard) check(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, upstream.ErrUnauthorized) && g.session != nil && g.session.Clear() {
		log.Printf("INFO: session rejected by backend, signing out")
		g.logout()
	}
	return err
}

func (g guard) logout() {
	if g.onLogout != nil {
		g.onLogout()
	}
}
