package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/api"
	"shukuma/webapp/internal/config"
	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository/memory"
	"shukuma/webapp/internal/upstream"
	"shukuma/webapp/internal/view"
	"shukuma/webapp/internal/web"
)

// newStack starts a backend over in-memory repositories and returns the web
// app router pointed at it.
func newStack(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := gin.New()
	api.SetupRoutes(backend, api.NewServices(memory.New(), nil, config.JWTConfig{Secret: "e2e-secret", Expiration: time.Hour}, "white-noise"))
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := upstream.NewClient(srv.URL, 5*time.Second)
	router := gin.New()
	web.SetupRoutes(router, client, client)
	return router
}

func call(t *testing.T, router http.Handler, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil && w.Code < 300 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

type account struct {
	token string
	id    string
}

func join(t *testing.T, router http.Handler, username string) account {
	t.Helper()
	status := call(t, router, http.MethodPost, "/api/register", "", model.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "secret1",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	var login model.LoginResponse
	status = call(t, router, http.MethodPost, "/api/login", "", model.LoginRequest{Username: username, Password: "secret1"}, &login)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, login.Token)
	return account{token: login.Token, id: login.User.ID}
}

func makeFriends(t *testing.T, router http.Handler, from, to account, toUsername string) {
	t.Helper()
	var req model.FriendRequest
	require.Equal(t, http.StatusCreated, call(t, router, http.MethodPost, "/api/community/friend-request", from.token,
		model.FriendRequestBody{Username: toUsername}, &req))
	require.Equal(t, http.StatusOK, call(t, router, http.MethodPost, "/api/community/friend-accept", to.token,
		model.FriendAcceptBody{RequestID: req.ID, Accept: true}, nil))
}

func activeChallenge(t *testing.T, router http.Handler, who account) *model.Challenge {
	t.Helper()
	var active *model.Challenge
	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/api/community/active-challenge", who.token, nil, &active))
	return active
}

func TestChallengeLifecycleThroughProxy(t *testing.T) {
	router := newStack(t)
	alice := join(t, router, "alice")
	bob := join(t, router, "bob")
	makeFriends(t, router, alice, bob, "bob")

	var sent model.Challenge
	require.Equal(t, http.StatusCreated, call(t, router, http.MethodPost, "/api/community/challenge", alice.token,
		model.ChallengeRequest{ToUserID: bob.id, DurationDays: 7, Message: "one week"}, &sent))

	var bobs []model.Challenge
	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/api/community/challenges", bob.token, nil, &bobs))
	require.Len(t, bobs, 1)
	assert.Equal(t, domain.ChallengePending, bobs[0].Status)
	assert.Equal(t, "alice", bobs[0].FromUser.Username)
	assert.Nil(t, activeChallenge(t, router, alice))

	before := time.Now()
	require.Equal(t, http.StatusOK, call(t, router, http.MethodPost, "/api/community/challenge-respond", bob.token,
		model.ChallengeRespondBody{ChallengeID: sent.ID, Accept: true}, nil))

	active := activeChallenge(t, router, bob)
	require.NotNil(t, active)
	assert.Equal(t, domain.ChallengeAccepted, active.Status)
	require.NotNil(t, active.Deadline)
	assert.WithinDuration(t, before.Add(7*24*time.Hour), *active.Deadline, time.Minute)
	assert.Nil(t, activeChallenge(t, router, alice))

	var cv view.CommunityView
	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/view/community", bob.token, nil, &cv))
	require.NotNil(t, cv.ActiveChallenge)
	assert.False(t, cv.CanSendChallenge)
	assert.True(t, cv.ActiveChallenge.CanComplete)

	require.Equal(t, http.StatusOK, call(t, router, http.MethodPost, "/api/community/challenge-complete", bob.token,
		model.ChallengeCompleteBody{ChallengeID: sent.ID}, nil))

	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/api/community/challenges", bob.token, nil, &bobs))
	require.Len(t, bobs, 1)
	assert.Equal(t, domain.ChallengeCompleted, bobs[0].Status)
	assert.True(t, bobs[0].IsComplete)
	assert.Nil(t, activeChallenge(t, router, bob))
	assert.Nil(t, activeChallenge(t, router, alice))
}

func TestProfileViewThroughProxy(t *testing.T) {
	router := newStack(t)
	alice := join(t, router, "alice")
	join(t, router, "bob")

	var pv view.ProfileView
	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/view/profile/bob", alice.token, nil, &pv))
	assert.False(t, pv.IsSelf)
	assert.Equal(t, view.ActionAdd, pv.FriendAction)

	require.Equal(t, http.StatusOK, call(t, router, http.MethodGet, "/view/profile/alice", alice.token, nil, &pv))
	assert.True(t, pv.IsSelf)

	assert.Equal(t, http.StatusNotFound, call(t, router, http.MethodGet, "/view/profile/nobody", alice.token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, call(t, router, http.MethodGet, "/view/profile/bob", "", nil, nil))
}
