package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/service"
	"shukuma/webapp/internal/storage"
)

type errorResponse struct {
	status  int
	message string
}

// serviceErrors maps service sentinels to the status and message clients see.
var serviceErrors = []struct {
	err error
	errorResponse
}{
	{service.ErrUserAlreadyExists, errorResponse{http.StatusConflict, "User already exists"}},
	{service.ErrRegistrationInvalid, errorResponse{http.StatusBadRequest, "Username, email, and password are required."}},
	{service.ErrAuthenticationFailed, errorResponse{http.StatusUnauthorized, "Invalid credentials"}},
	{service.ErrInvalidToken, errorResponse{http.StatusUnauthorized, "Invalid or expired token"}},
	{service.ErrUserNotFound, errorResponse{http.StatusNotFound, "User not found"}},

	{service.ErrExerciseNotFound, errorResponse{http.StatusNotFound, "Exercise not found"}},
	{service.ErrValidationFailed, errorResponse{http.StatusBadRequest, "Validation failed"}},

	{service.ErrContentRequired, errorResponse{http.StatusBadRequest, "Content is required"}},
	{service.ErrPostNotFound, errorResponse{http.StatusNotFound, "Post not found"}},
	{service.ErrCommentNotFound, errorResponse{http.StatusNotFound, "Comment not found"}},
	{service.ErrAlreadyLiked, errorResponse{http.StatusBadRequest, "Already liked this post"}},
	{service.ErrNotLiked, errorResponse{http.StatusBadRequest, "Post not liked yet"}},
	{service.ErrCommentAccess, errorResponse{http.StatusForbidden, "Not authorized to delete this comment"}},

	{service.ErrUsernameRequired, errorResponse{http.StatusBadRequest, "Username is required"}},
	{service.ErrSelfFriendRequest, errorResponse{http.StatusBadRequest, "Cannot send friend request to yourself"}},
	{service.ErrAlreadyFriends, errorResponse{http.StatusBadRequest, "Already friends"}},
	{service.ErrFriendRequestExists, errorResponse{http.StatusBadRequest, "Friend request already sent"}},
	{service.ErrFriendRequestMissing, errorResponse{http.StatusNotFound, "Friend request not found"}},
	{service.ErrFriendRequestAccess, errorResponse{http.StatusForbidden, "Not authorized to respond to this request"}},
	{service.ErrFriendRequestHandled, errorResponse{http.StatusBadRequest, "Friend request already handled"}},

	{service.ErrChallengeNotFound, errorResponse{http.StatusNotFound, "Challenge not found"}},
	{service.ErrSelfChallenge, errorResponse{http.StatusBadRequest, "Cannot challenge yourself"}},
	{service.ErrNotFriends, errorResponse{http.StatusForbidden, "You can only challenge friends"}},
	{service.ErrInvalidDuration, errorResponse{http.StatusBadRequest, "Duration must be between 1 and 30 days"}},
	{service.ErrActiveChallenge, errorResponse{http.StatusBadRequest, "User already has an active challenge"}},
	{service.ErrChallengeAccess, errorResponse{http.StatusForbidden, "Not authorized to modify this challenge"}},
	{service.ErrChallengeResponded, errorResponse{http.StatusBadRequest, "Challenge already responded to"}},
	{service.ErrChallengeNotActive, errorResponse{http.StatusBadRequest, "Challenge is not active"}},
	{service.ErrChallengeExpired, errorResponse{http.StatusBadRequest, "Challenge has expired"}},

	{service.ErrJournalNotFound, errorResponse{http.StatusNotFound, "Journal entry not found"}},
	{service.ErrInvalidDate, errorResponse{http.StatusBadRequest, "Invalid date format"}},
	{service.ErrInvalidMood, errorResponse{http.StatusBadRequest, "Invalid mood"}},

	{service.ErrTrackNotFound, errorResponse{http.StatusNotFound, "Track not found"}},
	{service.ErrUnsupportedAudio, errorResponse{http.StatusBadRequest, "Only audio files are allowed"}},
	{storage.ErrNotConfigured, errorResponse{http.StatusServiceUnavailable, "Storage is not configured"}},
}

// abortWithServiceError writes the mapped response for err, or a logged 500.
func abortWithServiceError(c *gin.Context, op string, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			abortWithError(c, m.status, m.message)
			return
		}
	}
	log.Printf("ERROR: %s: %v", op, err)
	abortWithError(c, http.StatusInternalServerError, "Internal server error")
}
