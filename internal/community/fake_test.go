package community

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/upstream"
)

var (
	alice = model.User{ID: "u1", Username: "A"}
	bob   = model.User{ID: "u2", Username: "B"}
)

// fakeBackend is an in-memory Backend acting on behalf of a single viewer.
type fakeBackend struct {
	mu     sync.Mutex
	viewer model.User

	posts      []model.Post
	friends    []model.FriendRequest
	challenges []model.Challenge
	active     *model.Challenge
	exercises  []model.Exercise
	profile    *model.Profile

	errs  map[string]error
	calls map[string]int

	sentChallenge   model.ChallengeRequest
	respondedFriend string
	beforeComment   func(postID string)
}

func newFakeBackend(viewer model.User) *fakeBackend {
	return &fakeBackend{viewer: viewer, errs: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeBackend) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.errs[name]
}

func (f *fakeBackend) failWith(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) Feed(ctx context.Context, token string) ([]model.Post, error) {
	if err := f.call("Feed"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Post, len(f.posts))
	for i, p := range f.posts {
		p.Likes = append([]string(nil), p.Likes...)
		out[i] = p
	}
	return out, nil
}

func (f *fakeBackend) Friends(ctx context.Context, token string) ([]model.FriendRequest, error) {
	if err := f.call("Friends"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.FriendRequest(nil), f.friends...), nil
}

func (f *fakeBackend) Challenges(ctx context.Context, token string) ([]model.Challenge, error) {
	if err := f.call("Challenges"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Challenge(nil), f.challenges...), nil
}

func (f *fakeBackend) ActiveChallenge(ctx context.Context, token string) (*model.Challenge, error) {
	if err := f.call("ActiveChallenge"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, nil
}

func (f *fakeBackend) Exercises(ctx context.Context) ([]model.Exercise, error) {
	if err := f.call("Exercises"); err != nil {
		return nil, err
	}
	return f.exercises, nil
}

func (f *fakeBackend) CreatePost(ctx context.Context, token string, req model.CreatePostRequest) error {
	if err := f.call("CreatePost"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append([]model.Post{{ID: "new", Author: f.viewer, Content: req.Content, Type: req.Type}}, f.posts...)
	return nil
}

func (f *fakeBackend) findPost(postID string) *model.Post {
	for i := range f.posts {
		if f.posts[i].ID == postID {
			return &f.posts[i]
		}
	}
	return nil
}

func (f *fakeBackend) Like(ctx context.Context, token, postID string) error {
	if err := f.call("Like"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.findPost(postID)
	for _, id := range p.Likes {
		if id == f.viewer.ID {
			return &upstream.APIError{Status: http.StatusBadRequest, Message: "Already liked this post"}
		}
	}
	p.Likes = append(p.Likes, f.viewer.ID)
	return nil
}

func (f *fakeBackend) Unlike(ctx context.Context, token, postID string) error {
	if err := f.call("Unlike"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.findPost(postID)
	for i, id := range p.Likes {
		if id == f.viewer.ID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return &upstream.APIError{Status: http.StatusBadRequest, Message: "Post not liked yet"}
}

func (f *fakeBackend) Comments(ctx context.Context, token, postID string) ([]model.Comment, error) {
	if err := f.call("Comments"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := f.findPost(postID); p != nil {
		return append([]model.Comment(nil), p.Comments...), nil
	}
	return []model.Comment{}, nil
}

func (f *fakeBackend) AddComment(ctx context.Context, token, postID, content string) error {
	if f.beforeComment != nil {
		f.beforeComment(postID)
	}
	return f.call("AddComment")
}

func (f *fakeBackend) DeleteComment(ctx context.Context, token, postID, commentID string) error {
	return f.call("DeleteComment")
}

func (f *fakeBackend) SendFriendRequest(ctx context.Context, token, username string) error {
	return f.call("SendFriendRequest")
}

func (f *fakeBackend) RespondFriendRequest(ctx context.Context, token, requestID string, accept bool) error {
	if err := f.call("RespondFriendRequest"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.respondedFriend = requestID
	return nil
}

func (f *fakeBackend) SendChallenge(ctx context.Context, token string, req model.ChallengeRequest) (*model.Challenge, error) {
	if err := f.call("SendChallenge"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sentChallenge = req
	c := model.Challenge{ID: "c-new", FromUser: f.viewer, ToUser: model.User{ID: req.ToUserID}, Status: domain.ChallengePending, DurationDays: req.DurationDays}
	f.challenges = append(f.challenges, c)
	return &c, nil
}

func (f *fakeBackend) RespondChallenge(ctx context.Context, token, challengeID string, accept bool) error {
	return f.call("RespondChallenge")
}

func (f *fakeBackend) CompleteChallenge(ctx context.Context, token, challengeID string) error {
	return f.call("CompleteChallenge")
}

func (f *fakeBackend) Profile(ctx context.Context, token, username string) (*model.Profile, error) {
	if err := f.call("Profile"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, nil
}

func tokenFor(t *testing.T, u model.User) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"_id":      u.ID,
		"username": u.Username,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func sessionFor(t *testing.T, u model.User) *session.Session {
	t.Helper()
	s, err := session.New(tokenFor(t, u))
	require.NoError(t, err)
	return s
}

var errUnauthorized = &upstream.APIError{Status: http.StatusUnauthorized, Message: "Invalid token"}
