package community

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/session"
	"shukuma/webapp/internal/upstream"
	"shukuma/webapp/internal/view"
)

func newPage(t *testing.T, backend *fakeBackend) (*Page, *atomic.Int32) {
	t.Helper()
	var logouts atomic.Int32
	page := NewPage(backend, sessionFor(t, backend.viewer), func() { logouts.Add(1) })
	return page, &logouts
}

func TestPage_LoadFetchesEveryResource(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob}}
	backend.friends = []model.FriendRequest{{ID: "f1", Requester: alice, Recipient: bob, Status: domain.FriendshipAccepted}}
	backend.exercises = []model.Exercise{{ID: "e1", Name: "Plank"}}

	page, logouts := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	for _, name := range []string{"Feed", "Friends", "Challenges", "ActiveChallenge", "Exercises"} {
		assert.Equal(t, 1, backend.count(name), name)
	}

	v := page.View()
	assert.Len(t, v.Posts, 1)
	assert.Equal(t, []model.User{bob}, v.ChallengeTargets)
	assert.True(t, v.CanSendChallenge)
	for name, st := range v.Resources {
		assert.True(t, st.Loaded, name)
		assert.False(t, st.Loading, name)
	}
	assert.Zero(t, logouts.Load())
}

func TestPage_PartialFailureLeavesOtherResources(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob}}
	backend.failWith("Friends", fmt.Errorf("%w: connection refused", upstream.ErrTransport))
	backend.failWith("Challenges", &upstream.APIError{Status: 500, Message: "boom"})

	page, logouts := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	v := page.View()
	assert.Len(t, v.Posts, 1)
	assert.Equal(t, upstream.NetworkErrorMessage, v.Resources[view.ResourceFriends].Error)
	assert.Equal(t, "boom", v.Resources[view.ResourceChallenges].Error)
	assert.True(t, v.Resources[view.ResourceFeed].Loaded)
	assert.Zero(t, logouts.Load())
}

func TestPage_FailedRefreshKeepsPriorState(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	backend.failWith("Feed", fmt.Errorf("%w: timeout", upstream.ErrTransport))
	require.NoError(t, page.Load(context.Background()))

	v := page.View()
	assert.Len(t, v.Posts, 1, "stale feed stays until the next successful fetch")
	assert.Equal(t, upstream.NetworkErrorMessage, v.Resources[view.ResourceFeed].Error)
}

func TestPage_UnauthorizedLogsOutOnce(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.failWith("Feed", errUnauthorized)
	backend.failWith("Friends", errUnauthorized)
	backend.failWith("Challenges", errUnauthorized)

	sess := sessionFor(t, alice)
	var logouts atomic.Int32
	page := NewPage(backend, sess, func() { logouts.Add(1) })

	err := page.Load(context.Background())
	assert.True(t, errors.Is(err, upstream.ErrUnauthorized))
	assert.Equal(t, int32(1), logouts.Load())
	assert.False(t, sess.Active())
}

func TestPage_NoSession(t *testing.T) {
	backend := newFakeBackend(alice)
	var logouts atomic.Int32
	page := NewPage(backend, nil, func() { logouts.Add(1) })

	assert.ErrorIs(t, page.Load(context.Background()), ErrNotSignedIn)
	assert.Equal(t, int32(1), logouts.Load())
	assert.Zero(t, backend.count("Feed"))
}

func TestPage_CreatePost(t *testing.T) {
	backend := newFakeBackend(alice)
	page, _ := newPage(t, backend)

	assert.ErrorIs(t, page.CreatePost(context.Background(), "   "), ErrEmptyContent)
	assert.Zero(t, backend.count("CreatePost"))

	require.NoError(t, page.CreatePost(context.Background(), "  leg day  "))
	assert.Equal(t, 1, backend.count("Feed"), "feed refetched after posting")
	v := page.View()
	require.Len(t, v.Posts, 1)
	assert.Equal(t, "leg day", v.Posts[0].Post.Content)
	assert.True(t, v.Posts[0].IsMine)

	backend.failWith("CreatePost", &upstream.APIError{Status: 400, Message: "Content is required"})
	err := page.CreatePost(context.Background(), "again")
	assert.Equal(t, "Content is required", Message(err))
}

func TestPage_LikeIsIdempotent(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	// Another tab likes the post; this page's feed is now stale.
	require.NoError(t, backend.Like(context.Background(), "", "p1"))

	require.NoError(t, page.ToggleLike(context.Background(), "p1"), "repeated like is swallowed")
	v := page.View()
	assert.True(t, v.Posts[0].Liked)
	assert.Equal(t, []string{"u1"}, v.Posts[0].Post.Likes)

	require.NoError(t, page.ToggleLike(context.Background(), "p1"))
	assert.False(t, page.View().Posts[0].Liked)
	assert.Equal(t, 1, backend.count("Unlike"))
}

func TestPage_UnlikeErrorsAreSurfaced(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob, Likes: []string{"u1"}}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	// Another tab already unliked; the page still believes it is liked.
	require.NoError(t, backend.Unlike(context.Background(), "", "p1"))

	err := page.ToggleLike(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "Post not liked yet", Message(err))
	assert.True(t, page.View().Posts[0].Liked, "state left unchanged until the next refetch")

	assert.ErrorIs(t, page.ToggleLike(context.Background(), "missing"), ErrPostNotFound)
}

func TestPage_CommentSubmissionIsPerPost(t *testing.T) {
	backend := newFakeBackend(alice)
	entered := make(chan struct{})
	release := make(chan struct{})
	backend.beforeComment = func(postID string) {
		if postID == "p1" {
			close(entered)
			<-release
		}
	}
	page, _ := newPage(t, backend)

	done := make(chan error, 1)
	go func() { done <- page.AddComment(context.Background(), "p1", "first") }()
	<-entered

	assert.True(t, page.CommentSubmitting("p1"))
	assert.False(t, page.CommentSubmitting("p2"))
	assert.ErrorIs(t, page.AddComment(context.Background(), "p1", "second"), ErrCommentInFlight)
	assert.NoError(t, page.AddComment(context.Background(), "p2", "other post"))

	close(release)
	require.NoError(t, <-done)
	assert.False(t, page.CommentSubmitting("p1"))
	assert.Equal(t, 2, backend.count("AddComment"))

	assert.ErrorIs(t, page.AddComment(context.Background(), "p1", " "), ErrEmptyContent)
}

func TestPage_LikeTwiceStaysLiked(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: bob}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	require.NoError(t, page.Like(context.Background(), "p1"))
	require.NoError(t, page.Like(context.Background(), "p1"))
	assert.True(t, page.View().Posts[0].Liked)
	assert.Equal(t, 2, backend.count("Like"))

	require.NoError(t, page.Unlike(context.Background(), "p1"))
	err := page.Unlike(context.Background(), "p1")
	assert.Equal(t, "Post not liked yet", Message(err))
}

func TestPage_CommentsExpandAndDeriveFlags(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.posts = []model.Post{{ID: "p1", Author: alice, Comments: []model.Comment{
		{ID: "c1", Author: bob, Content: "nice"},
		{ID: "c2", Author: alice, Content: "thanks"},
	}}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	comments, err := page.Comments(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.False(t, comments[0].IsMine)
	assert.True(t, comments[0].CanDelete, "post author may delete any comment")
	assert.True(t, comments[1].IsMine)
	assert.True(t, page.CommentsExpanded("p1"))
	assert.Equal(t, 1, backend.count("Comments"))
}

func TestPage_ToggleComments(t *testing.T) {
	page, _ := newPage(t, newFakeBackend(alice))

	assert.False(t, page.CommentsExpanded("p1"))
	assert.True(t, page.ToggleComments("p1"))
	assert.True(t, page.CommentsExpanded("p1"))
	assert.False(t, page.CommentsExpanded("p2"))
	assert.False(t, page.ToggleComments("p1"))
}

func TestPage_FriendRequests(t *testing.T) {
	backend := newFakeBackend(alice)
	page, _ := newPage(t, backend)

	assert.ErrorIs(t, page.SendFriendRequest(context.Background(), "  "), ErrUsernameRequired)
	require.NoError(t, page.SendFriendRequest(context.Background(), "B"))
	require.NoError(t, page.RespondFriendRequest(context.Background(), "f9", true))
	assert.Equal(t, "f9", backend.respondedFriend)
	assert.Equal(t, 2, backend.count("Friends"))
}

func TestPage_SendChallenge(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.friends = []model.FriendRequest{{ID: "f1", Requester: alice, Recipient: bob, Status: domain.FriendshipAccepted}}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	targets, err := page.ChallengeTargets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.User{bob}, targets)

	assert.ErrorIs(t, page.SendChallenge(context.Background(), ChallengeDraft{}), ErrNoFriendSelected)

	require.NoError(t, page.SendChallenge(context.Background(), ChallengeDraft{ToUserID: "u2", Message: " go "}))
	assert.Equal(t, 7, backend.sentChallenge.DurationDays)
	assert.Equal(t, "go", backend.sentChallenge.Message)
	assert.Empty(t, backend.sentChallenge.ExerciseID)
	assert.Equal(t, 2, backend.count("Challenges"))
	assert.Equal(t, 2, backend.count("ActiveChallenge"))
	assert.False(t, page.SendingChallenge())

	require.NoError(t, page.SendChallenge(context.Background(), ChallengeDraft{ToUserID: "u2", DurationDays: 45}))
	assert.Equal(t, 45, backend.sentChallenge.DurationDays, "bounds are the backend's call")
}

func TestPage_ActiveChallengeBlocksSendAndAccept(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.active = &model.Challenge{ID: "c1", FromUser: bob, ToUser: alice, Status: domain.ChallengeAccepted}
	page, _ := newPage(t, backend)
	require.NoError(t, page.Load(context.Background()))

	assert.False(t, page.View().CanSendChallenge)
	assert.ErrorIs(t, page.SendChallenge(context.Background(), ChallengeDraft{ToUserID: "u2"}), ErrActiveChallenge)
	assert.ErrorIs(t, page.RespondChallenge(context.Background(), "c2", true), ErrActiveChallenge)
	assert.Zero(t, backend.count("SendChallenge"))
	assert.Zero(t, backend.count("RespondChallenge"))

	require.NoError(t, page.RespondChallenge(context.Background(), "c2", false), "declining is allowed")
	require.NoError(t, page.CompleteChallenge(context.Background(), "c1"))
	assert.Equal(t, 1, backend.count("CompleteChallenge"))
}

func TestPage_TimeRemainingUsesClock(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(45 * time.Minute)
	backend := newFakeBackend(alice)
	backend.challenges = []model.Challenge{{ID: "c1", FromUser: bob, ToUser: alice, Status: domain.ChallengeAccepted, Deadline: &deadline}}

	page := NewPage(backend, sessionFor(t, alice), nil, WithClock(func() time.Time { return now }))
	require.NoError(t, page.Load(context.Background()))

	v := page.View()
	require.NotNil(t, v.Challenges[0].TimeRemaining)
	assert.Equal(t, "45m remaining", v.Challenges[0].TimeRemaining.Text)
}

func TestProfilePage_RespondResolvesRequest(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.profile = &model.Profile{User: bob, FriendRequestStatus: model.RelationCanAccept, CurrentStreak: 7}
	backend.friends = []model.FriendRequest{{ID: "f7", Requester: bob, Recipient: alice, Status: domain.FriendshipPending}}

	page := NewProfilePage(backend, sessionFor(t, alice), nil, "B")
	assert.Nil(t, page.View())
	require.NoError(t, page.Load(context.Background()))

	v := page.View()
	require.NotNil(t, v)
	assert.Equal(t, view.ActionRespond, v.FriendAction)
	assert.Len(t, v.Badges, 1)

	require.NoError(t, page.RespondFriendRequest(context.Background(), true))
	assert.Equal(t, "f7", backend.respondedFriend)
	assert.Equal(t, 2, backend.count("Profile"))
	assert.False(t, page.RequestPending())
}

func TestProfilePage_RespondWithoutRequest(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.profile = &model.Profile{User: bob}
	page := NewProfilePage(backend, sessionFor(t, alice), nil, "B")

	assert.ErrorIs(t, page.RespondFriendRequest(context.Background(), true), ErrRequestNotFound)
	require.NoError(t, page.AddFriend(context.Background()))
	assert.Equal(t, 1, backend.count("SendFriendRequest"))
}

func TestProfilePage_UnauthorizedLogsOut(t *testing.T) {
	backend := newFakeBackend(alice)
	backend.failWith("Profile", errUnauthorized)
	var logouts atomic.Int32
	sess, err := session.New(tokenFor(t, alice))
	require.NoError(t, err)

	page := NewProfilePage(backend, sess, func() { logouts.Add(1) }, "B")
	assert.ErrorIs(t, page.Load(context.Background()), upstream.ErrUnauthorized)
	assert.Equal(t, int32(1), logouts.Load())
}
