package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shukuma/webapp/internal/community"
	"shukuma/webapp/internal/upstream"
)

const msgSessionExpired = "Session expired, please log in again"

var errInvalidBody = errors.New("invalid request body")

// pageErrors maps the orchestrator's local refusals to statuses.
var pageErrors = []struct {
	err     error
	status  int
	message string
}{
	{errInvalidBody, http.StatusBadRequest, "Invalid request body"},
	{community.ErrEmptyContent, http.StatusBadRequest, "Content cannot be empty"},
	{community.ErrUsernameRequired, http.StatusBadRequest, "Username is required"},
	{community.ErrNoFriendSelected, http.StatusBadRequest, "Select a friend to challenge"},
	{community.ErrActiveChallenge, http.StatusBadRequest, "You already have an active challenge"},
	{community.ErrChallengeInFlight, http.StatusConflict, "A challenge is already being sent"},
	{community.ErrCommentInFlight, http.StatusConflict, "A comment is already being submitted for this post"},
	{community.ErrRequestInFlight, http.StatusConflict, "A friend request is already being processed"},
	{community.ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{community.ErrRequestNotFound, http.StatusNotFound, "Friend request not found"},
}

// abortWithPageError relays backend answers with their own status and message,
// turns a rejected session into 401 and anything unexpected into a logged 500.
func abortWithPageError(c *gin.Context, op string, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, upstream.ErrUnauthorized), errors.Is(err, community.ErrNotSignedIn):
		abortWithError(c, http.StatusUnauthorized, msgSessionExpired)
		return
	case errors.As(err, &apiErr):
		abortWithError(c, apiErr.Status, community.Message(err))
		return
	}
	for _, m := range pageErrors {
		if errors.Is(err, m.err) {
			abortWithError(c, m.status, m.message)
			return
		}
	}
	log.Printf("ERROR: view %s (request %s): %v", op, c.GetString(ContextRequestIDKey), err)
	abortWithError(c, http.StatusInternalServerError, msgInternalError)
}
