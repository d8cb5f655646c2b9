package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/config"
	"shukuma/webapp/internal/repository"
	"shukuma/webapp/internal/service"
	"shukuma/webapp/internal/storage"
)

// Services bundles what the backend API needs.
type Services struct {
	Auth      service.AuthService
	Exercise  service.ExerciseService
	Community service.CommunityService
	Journal   service.JournalService
	Track     service.TrackService
}

// SetupRoutes mounts the backend contract under /api.
func SetupRoutes(router *gin.Engine, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	communityHandler := NewCommunityHandler(services.Community)
	journalHandler := NewJournalHandler(services.Journal)
	trackHandler := NewTrackHandler(services.Track)

	authMiddleware := AuthMiddleware(services.Auth)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/register", authHandler.Register)
		apiGroup.POST("/login", authHandler.Login)

		exerciseGroup := apiGroup.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("/random", exerciseHandler.RandomExercise)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("/:id/complete", authMiddleware, exerciseHandler.CompleteExercise)
		}

		apiGroup.GET("/white-noise", trackHandler.List)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		community := protected.Group("/community")
		{
			community.GET("/feed", communityHandler.Feed)
			community.POST("/share", communityHandler.Share)
			community.POST("/like/:postId", communityHandler.Like)
			community.POST("/unlike/:postId", communityHandler.Unlike)
			community.GET("/comments/:postId", communityHandler.Comments)
			community.POST("/comment/:postId", communityHandler.AddComment)
			community.DELETE("/comment/:postId/:commentId", communityHandler.DeleteComment)

			community.GET("/friends", communityHandler.Friends)
			community.POST("/friend-request", communityHandler.FriendRequest)
			community.POST("/friend-accept", communityHandler.FriendAccept)

			community.GET("/challenges", communityHandler.Challenges)
			community.GET("/active-challenge", communityHandler.ActiveChallenge)
			community.POST("/challenge", communityHandler.SendChallenge)
			community.POST("/challenge-respond", communityHandler.RespondChallenge)
			community.POST("/challenge-complete", communityHandler.CompleteChallenge)

			community.GET("/profile/:username", communityHandler.Profile)
		}

		journal := protected.Group("/journal")
		{
			journal.GET("", journalHandler.List)
			journal.POST("", journalHandler.Create)
			journal.GET("/:id", journalHandler.Get)
			journal.PUT("/:id", journalHandler.Update)
			journal.DELETE("/:id", journalHandler.Delete)
		}

		protected.POST("/white-noise", trackHandler.RequestUpload)
		protected.DELETE("/white-noise/:id", trackHandler.Delete)
	}
}

// NewServices wires the services over repos. fileStorage may be nil when no
// bucket is configured; track uploads then answer 503.
func NewServices(repos repository.Repositories, fileStorage storage.FileStorage, jwtCfg config.JWTConfig, trackPrefix string) Services {
	return Services{
		Auth:      service.NewAuthService(repos.Users, jwtCfg.Secret, jwtCfg.Expiration),
		Exercise:  service.NewExerciseService(repos.Exercises, repos.Users),
		Community: service.NewCommunityService(repos.Users, repos.Exercises, repos.Posts, repos.Friendships, repos.Challenges),
		Journal:   service.NewJournalService(repos.Journal),
		Track:     service.NewTrackService(repos.Tracks, fileStorage, trackPrefix),
	}
}
