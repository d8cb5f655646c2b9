package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0)
}

func TestClient_SendsBearerTokenAndBody(t *testing.T) {
	var gotAuth, gotPath, gotType string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	err := client.AddComment(context.Background(), "tok", "p1", "nice")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "/api/community/comment/p1", gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "nice", gotBody["content"])
}

func TestClient_APIErrorCarriesBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Already liked this post"}`))
	})

	err := client.Like(context.Background(), "tok", "p1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Already liked this post", apiErr.Message)
	assert.Equal(t, "Already liked this post", MessageOf(err))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestClient_UnauthorizedMatchesSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Feed(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Unauthorized", MessageOf(err))
}

func TestClient_InvalidJSONIsTransportError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	_, err := client.Friends(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
	assert.Equal(t, NetworkErrorMessage, MessageOf(err))
}

func TestClient_ConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(srv.URL, 0)
	srv.Close()

	_, err := client.Challenges(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestClient_ActiveChallengeNull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	active, err := client.ActiveChallenge(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestClient_ChallengeExerciseRefShapes(t *testing.T) {
	body := `[
		{"_id":"c1","fromUser":{"_id":"u1","username":"A"},"toUser":{"_id":"u2","username":"B"},
		 "exerciseId":{"_id":"e1","name":"Plank","type":"core","difficulty":"easy","duration":60},
		 "status":"pending","durationDays":7},
		{"_id":"c2","fromUser":{"_id":"u1","username":"A"},"toUser":{"_id":"u2","username":"B"},
		 "exerciseId":"e2","status":"pending","durationDays":7},
		{"_id":"c3","fromUser":{"_id":"u1","username":"A"},"toUser":{"_id":"u2","username":"B"},
		 "exerciseId":null,"exerciseSnapshot":{"name":"Squat","type":"lowerbody","difficulty":"medium","reps":20},
		 "status":"pending","durationDays":7}
	]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	challenges, err := client.Challenges(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, challenges, 3)

	require.NotNil(t, challenges[0].ExerciseID.Populated())
	assert.Equal(t, "Plank", challenges[0].ExerciseID.Populated().Name)

	require.NotNil(t, challenges[1].ExerciseID)
	assert.Equal(t, "e2", challenges[1].ExerciseID.ID)
	assert.Nil(t, challenges[1].ExerciseID.Populated())

	assert.Nil(t, challenges[2].ExerciseID.Populated())
	require.NotNil(t, challenges[2].ExerciseSnapshot)
	assert.Equal(t, "Squat", challenges[2].ExerciseSnapshot.Name)
}

func TestForward_RelaysStatusAndQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "abc", r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"message":"short and stout"}`))
	})

	resp, err := client.Forward(context.Background(), ForwardRequest{
		Method: http.MethodGet,
		Path:   "/api/journal",
		Query:  map[string][]string{"page": {"2"}},
		Header: http.Header{"X-Request-Id": {"abc"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.JSONEq(t, `{"message":"short and stout"}`, string(resp.Body))
}

func TestClient_JournalSendsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/journal", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(model.JournalPage{
			Journals:   []model.JournalEntry{{ID: "j1", Content: "ran 5k"}},
			Pagination: model.Pagination{Page: 2, Limit: 20, Total: 21, Pages: 2},
		})
	})

	page, err := client.Journal(context.Background(), "tok", url.Values{"page": {"2"}})
	require.NoError(t, err)
	require.Len(t, page.Journals, 1)
	assert.Equal(t, 21, int(page.Pagination.Total))
}

func TestClient_TracksIsAnonymous(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"_id":"t1","name":"Rain","url":"https://cdn/rain.mp3","duration":185}]`))
	})

	tracks, err := client.Tracks(context.Background())
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, 185, tracks[0].Duration)
}
