package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/community"
	"shukuma/webapp/internal/upstream"
)

// journalQuery is what the journal list forwards, with its defaults.
var journalQuery = []QueryParam{{Name: "limit", Default: "20"}, {Name: "page", Default: "1"}, {Name: "startDate"}, {Name: "endDate"}}

// ProxyRoutes is the table of backend endpoints exposed under /api.
var ProxyRoutes = []Route{
	// --- Auth ---
	{Name: "login", Method: http.MethodPost, Path: "/login", Backend: "/api/login",
		Passthrough: true, Required: []string{"username", "password"},
		RequiredMessage: "Username and password are required."},
	{Name: "register", Method: http.MethodPost, Path: "/register", Backend: "/api/register",
		Passthrough: true, Required: []string{"username", "email", "password"},
		RequiredMessage: "Username, email, and password are required."},

	// --- Exercises ---
	{Name: "exercises.list", Method: http.MethodGet, Path: "/exercises", Backend: "/api/exercises",
		Fallback: "Failed to fetch exercises"},
	{Name: "exercises.create", Method: http.MethodPost, Path: "/exercises", Backend: "/api/exercises",
		Fallback: "Failed to create exercise"},
	{Name: "exercises.random", Method: http.MethodGet, Path: "/exercises/random", Backend: "/api/exercises/random",
		Fallback: "Failed to fetch random exercise"},
	{Name: "exercises.get", Method: http.MethodGet, Path: "/exercises/:id", Backend: "/api/exercises/:id",
		Fallback: "Failed to fetch exercise"},
	{Name: "exercises.complete", Method: http.MethodPost, Path: "/exercises/:id/complete", Backend: "/api/exercises/:id/complete",
		Auth: true, Passthrough: true},

	// --- Daily ---
	{Name: "daily.get", Method: http.MethodGet, Path: "/daily", Backend: "/api/daily",
		Auth: true, Fallback: "Failed to fetch daily exercise"},
	{Name: "daily.complete", Method: http.MethodPost, Path: "/daily", Backend: "/api/daily",
		Auth: true, Fallback: "Failed to complete daily exercise"},
	{Name: "daily-challenge.get", Method: http.MethodGet, Path: "/daily-challenge", Backend: "/api/daily-challenge",
		Auth: true, Passthrough: true},
	{Name: "daily-challenge.complete", Method: http.MethodPost, Path: "/daily-challenge", Backend: "/api/daily-challenge/complete",
		Auth: true, Passthrough: true},
	{Name: "daily-challenge.stats", Method: http.MethodGet, Path: "/daily-challenge/stats", Backend: "/api/daily-challenge/stats",
		Auth: true, Passthrough: true},

	// --- Journal ---
	{Name: "journal.list", Method: http.MethodGet, Path: "/journal", Backend: "/api/journal",
		Auth: true, Fallback: "Failed to fetch journal entries",
		Query: journalQuery},
	{Name: "journal.create", Method: http.MethodPost, Path: "/journal", Backend: "/api/journal",
		Auth: true, Fallback: "Failed to create journal entry", SuccessStatus: http.StatusCreated},
	{Name: "journal.get", Method: http.MethodGet, Path: "/journal/:id", Backend: "/api/journal/:id",
		Auth: true, Fallback: "Failed to fetch journal entry"},
	{Name: "journal.update", Method: http.MethodPut, Path: "/journal/:id", Backend: "/api/journal/:id",
		Auth: true, Fallback: "Failed to update journal entry"},
	{Name: "journal.delete", Method: http.MethodDelete, Path: "/journal/:id", Backend: "/api/journal/:id",
		Auth: true, Fallback: "Failed to delete journal entry"},

	// --- Progress ---
	{Name: "progress.get", Method: http.MethodGet, Path: "/progress", Backend: "/api/progress/" + userIDPlaceholder,
		Auth: true, Fallback: "Failed to fetch progress"},
	{Name: "progress.log", Method: http.MethodPost, Path: "/progress", Backend: "/api/progress",
		Auth: true, Fallback: "Failed to log progress", SuccessStatus: http.StatusCreated},
	{Name: "progress.summary", Method: http.MethodGet, Path: "/progress/summary", Backend: "/api/progress/" + userIDPlaceholder + "/summary",
		Auth: true, Fallback: "Failed to fetch progress summary"},

	// --- Community ---
	{Name: "community.feed", Method: http.MethodGet, Path: "/community/feed", Backend: "/api/community/feed",
		Auth: true, Fallback: "Failed to fetch feed"},
	{Name: "community.friends", Method: http.MethodGet, Path: "/community/friends", Backend: "/api/community/friends",
		Auth: true, Fallback: "Failed to fetch friends"},
	{Name: "community.challenges", Method: http.MethodGet, Path: "/community/challenges", Backend: "/api/community/challenges",
		Auth: true, Fallback: "Failed to fetch challenges"},
	{Name: "community.active-challenge", Method: http.MethodGet, Path: "/community/active-challenge", Backend: "/api/community/active-challenge",
		Auth: true, Fallback: "Failed to fetch active challenge"},
	{Name: "community.share", Method: http.MethodPost, Path: "/community/share", Backend: "/api/community/share",
		Auth: true, Fallback: "Failed to create post"},
	{Name: "community.like", Method: http.MethodPost, Path: "/community/like/:postId", Backend: "/api/community/like/:postId",
		Auth: true, Fallback: "Failed to like post"},
	{Name: "community.unlike", Method: http.MethodPost, Path: "/community/unlike/:postId", Backend: "/api/community/unlike/:postId",
		Auth: true, Fallback: "Failed to unlike post"},
	{Name: "community.comment.add", Method: http.MethodPost, Path: "/community/comment/:postId", Backend: "/api/community/comment/:postId",
		Auth: true, Fallback: "Failed to add comment", SuccessStatus: http.StatusCreated},
	{Name: "community.comment.list", Method: http.MethodGet, Path: "/community/comment/:postId", Backend: "/api/community/comments/:postId",
		Auth: true, Fallback: "Failed to fetch comments"},
	{Name: "community.comment.delete", Method: http.MethodDelete, Path: "/community/comment/:postId/:commentId", Backend: "/api/community/comment/:postId/:commentId",
		Auth: true, Fallback: "Failed to delete comment"},
	{Name: "community.friend-request", Method: http.MethodPost, Path: "/community/friend-request", Backend: "/api/community/friend-request",
		Auth: true, Fallback: "Failed to send friend request"},
	{Name: "community.friend-accept", Method: http.MethodPost, Path: "/community/friend-accept", Backend: "/api/community/friend-accept",
		Auth: true, Fallback: "Failed to process friend request"},
	{Name: "community.challenge", Method: http.MethodPost, Path: "/community/challenge", Backend: "/api/community/challenge",
		Auth: true, Fallback: "Failed to send challenge", SuccessStatus: http.StatusCreated},
	{Name: "community.challenge-respond", Method: http.MethodPost, Path: "/community/challenge-respond", Backend: "/api/community/challenge-respond",
		Auth: true, Fallback: "Failed to respond to challenge"},
	{Name: "community.challenge-complete", Method: http.MethodPost, Path: "/community/challenge-complete", Backend: "/api/community/challenge-complete",
		Auth: true, Fallback: "Failed to complete challenge"},
	{Name: "community.profile", Method: http.MethodGet, Path: "/community/profile/:username", Backend: "/api/community/profile/:username",
		Auth: true, Fallback: "Failed to fetch profile"},

	// --- Streak ---
	{Name: "streak.current", Method: http.MethodGet, Path: "/streak/current", Backend: "/api/streak/current",
		Auth: true, Fallback: "Failed to fetch streak info"},
	{Name: "streak.badges", Method: http.MethodGet, Path: "/streak/badges", Backend: "/api/streak/badges",
		Auth: true, Fallback: "Failed to fetch badges"},
	{Name: "streak.badges.user", Method: http.MethodGet, Path: "/streak/badges/:userId", Backend: "/api/streak/badges/:userId",
		Auth: true, Fallback: "Failed to fetch user badges"},
	{Name: "streak.check", Method: http.MethodPost, Path: "/streak/check", Backend: "/api/streak/check",
		Auth: true, Fallback: "Failed to check streak"},

	// --- White noise ---
	{Name: "white-noise", Method: http.MethodGet, Path: "/white-noise", Backend: "/api/white-noise",
		Fallback: "Failed to fetch white noise tracks"},
}

// SetupRoutes mounts the proxy routes under /api and the view endpoints under /view.
func SetupRoutes(router *gin.Engine, client *upstream.Client, backend community.Backend) {
	proxy := NewProxyHandler(client)
	views := NewViewHandler(backend, client)

	router.Use(RequestID())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	for _, rt := range ProxyRoutes {
		apiGroup.Handle(rt.Method, rt.Path, proxy.Handle(rt))
	}

	router.GET("/view/white-noise", views.WhiteNoise)

	viewGroup := router.Group("/view")
	viewGroup.Use(RequireSession())
	{
		viewGroup.GET("/community", views.Community)
		viewGroup.POST("/community/share", views.Share)
		viewGroup.POST("/community/like/:postId", views.Like)
		viewGroup.POST("/community/unlike/:postId", views.Unlike)
		viewGroup.POST("/community/toggle-like/:postId", views.ToggleLike)
		viewGroup.GET("/community/comments/:postId", views.Comments)
		viewGroup.POST("/community/comment/:postId", views.AddComment)
		viewGroup.DELETE("/community/comment/:postId/:commentId", views.DeleteComment)
		viewGroup.POST("/community/friend-request", views.FriendRequest)
		viewGroup.POST("/community/friend-accept", views.FriendAccept)
		viewGroup.GET("/community/challenge-targets", views.ChallengeTargets)
		viewGroup.POST("/community/challenge", views.SendChallenge)
		viewGroup.POST("/community/challenge-respond", views.RespondChallenge)
		viewGroup.POST("/community/challenge-complete", views.CompleteChallenge)

		viewGroup.GET("/profile/:username", views.Profile)
		viewGroup.POST("/profile/:username/add", views.AddFriend)
		viewGroup.POST("/profile/:username/respond", views.RespondFriend)

		viewGroup.GET("/journal", views.Journal)
	}
}
