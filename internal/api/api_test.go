package api

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

	"shukuma/webapp/internal/config"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository/memory"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	services := NewServices(memory.New(), nil, config.JWTConfig{Secret: "test-secret", Expiration: time.Hour}, "white-noise")
	SetupRoutes(router, services)
	return router
}

func perform(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Message
}

// signUp registers and logs in username, returning the token and user id.
func signUp(t *testing.T, router *gin.Engine, username string) (string, string) {
	t.Helper()
	w := perform(router, http.MethodPost, "/api/register", "", model.RegisterRequest{
		Username: username, Email: username + "@example.com", Password: "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = perform(router, http.MethodPost, "/api/login", "", model.LoginRequest{Username: username, Password: "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func befriend(t *testing.T, router *gin.Engine, fromToken, toToken, toUsername string) {
	t.Helper()
	w := perform(router, http.MethodPost, "/api/community/friend-request", fromToken, model.FriendRequestBody{Username: toUsername})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var req model.FriendRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))

	w = perform(router, http.MethodPost, "/api/community/friend-accept", toToken, model.FriendAcceptBody{RequestID: req.ID, Accept: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthRoutes(t *testing.T) {
	router := setupRouter(t)
	signUp(t, router, "alice")

	w := perform(router, http.MethodPost, "/api/register", "", model.RegisterRequest{
		Username: "alice", Email: "other@example.com", Password: "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = perform(router, http.MethodPost, "/api/login", "", model.LoginRequest{Username: "alice", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", messageOf(t, w))

	w = perform(router, http.MethodPost, "/api/login", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	router := setupRouter(t)

	w := perform(router, http.MethodGet, "/api/community/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", messageOf(t, w))

	w = perform(router, http.MethodGet, "/api/community/feed", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(router, http.MethodGet, "/api/exercises", "", nil)
	assert.Equal(t, http.StatusOK, w.Code, "catalog is public")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestExerciseRoutes(t *testing.T) {
	router := setupRouter(t)
	token, _ := signUp(t, router, "alice")

	w := perform(router, http.MethodGet, "/api/exercises/random", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	reps := 15
	w = perform(router, http.MethodPost, "/api/exercises", "", model.CreateExerciseRequest{
		Name: "Squats", Type: "lowerbody", Difficulty: "easy", Reps: &reps,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ex model.Exercise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ex))

	w = perform(router, http.MethodGet, "/api/exercises/"+ex.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = perform(router, http.MethodGet, "/api/exercises/not-an-id", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodPost, "/api/exercises/"+ex.ID+"/complete", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = perform(router, http.MethodPost, "/api/exercises/"+ex.ID+"/complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var done model.CompletionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	assert.Equal(t, 1, done.ExercisesCompleted)
}

func TestLikeMessages(t *testing.T) {
	router := setupRouter(t)
	token, _ := signUp(t, router, "alice")

	w := perform(router, http.MethodPost, "/api/community/share", token, model.CreatePostRequest{Content: "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post model.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))

	w = perform(router, http.MethodPost, "/api/community/like/"+post.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = perform(router, http.MethodPost, "/api/community/like/"+post.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Already liked this post", messageOf(t, w))

	w = perform(router, http.MethodPost, "/api/community/unlike/"+post.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = perform(router, http.MethodPost, "/api/community/unlike/"+post.ID, token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Post not liked yet", messageOf(t, w))
}

func TestActiveChallengeRoutes(t *testing.T) {
	router := setupRouter(t)
	aliceToken, _ := signUp(t, router, "alice")
	bobToken, bobID := signUp(t, router, "bob")
	carolToken, _ := signUp(t, router, "carol")
	befriend(t, router, aliceToken, bobToken, "bob")
	befriend(t, router, carolToken, bobToken, "bob")

	w := perform(router, http.MethodGet, "/api/community/active-challenge", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = perform(router, http.MethodPost, "/api/community/challenge", aliceToken, model.ChallengeRequest{ToUserID: bobID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c model.Challenge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, 7, c.DurationDays)

	w = perform(router, http.MethodPost, "/api/community/challenge-respond", bobToken, model.ChallengeRespondBody{ChallengeID: c.ID, Accept: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(router, http.MethodPost, "/api/community/challenge", carolToken, model.ChallengeRequest{ToUserID: bobID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already has an active challenge", messageOf(t, w))

	w = perform(router, http.MethodPost, "/api/community/challenge", aliceToken, model.ChallengeRequest{ToUserID: bobID, DurationDays: 45})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Duration must be between 1 and 30 days", messageOf(t, w))

	w = perform(router, http.MethodPost, "/api/community/challenge-complete", aliceToken, model.ChallengeCompleteBody{ChallengeID: c.ID})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJournalRoutes(t *testing.T) {
	router := setupRouter(t)
	aliceToken, _ := signUp(t, router, "alice")
	bobToken, _ := signUp(t, router, "bob")

	w := perform(router, http.MethodPost, "/api/journal", aliceToken, model.JournalRequest{Content: "day one", Date: "2025-03-01", Mood: "good"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry model.JournalEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))

	w = perform(router, http.MethodPost, "/api/journal", aliceToken, gin.H{"content": "x", "mood": "ecstatic"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(router, http.MethodGet, "/api/journal?limit=5&page=1&startDate=2025-03-01&endDate=2025-03-01", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page model.JournalPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Pagination.Total)
	assert.Equal(t, 5, page.Pagination.Limit)

	w = perform(router, http.MethodGet, "/api/journal/"+entry.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Journal entry not found", messageOf(t, w))

	w = perform(router, http.MethodDelete, "/api/journal/"+entry.ID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWhiteNoiseWithoutStorage(t *testing.T) {
	router := setupRouter(t)
	token, _ := signUp(t, router, "alice")

	w := perform(router, http.MethodGet, "/api/white-noise", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = perform(router, http.MethodPost, "/api/white-noise", token, model.TrackUploadRequest{Name: "Rain", ContentType: "audio/mpeg"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
