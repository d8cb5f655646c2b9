package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shukuma/webapp/internal/session"
)

const (
	HeaderRequestID = "X-Request-ID"

	ContextRequestIDKey = "requestID"
	ContextSessionKey   = "session"
)

// RequestID tags every request with an id, reusing the caller's when present,
// so web app and backend log lines can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequireSession builds the explicit session for view endpoints. The token is
// only decoded for personalisation; a token that fails to decode is still
// passed on and left for the backend to judge.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.FromHeader(c.GetHeader("Authorization"))
		if errors.Is(err, session.ErrNoToken) {
			abortWithError(c, http.StatusUnauthorized, msgAuthRequired)
			return
		}
		if err != nil {
			log.Printf("WARN: request %s: could not decode session token: %v", c.GetString(ContextRequestIDKey), err)
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

func sessionFromContext(c *gin.Context) (*session.Session, error) {
	raw, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil, errors.New("session not found in context")
	}
	sess, ok := raw.(*session.Session)
	if !ok {
		return nil, errors.New("invalid session type in context")
	}
	return sess, nil
}
