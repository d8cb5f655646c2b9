// Package session holds the signed-in user's bearer token and the identity decoded
// from it. The decode is unverified: the identity is for display decisions only
// ("is this my post?") and must never be used to authorize anything. The backend
// enforces authorization on every call.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrNoToken        = errors.New("no bearer token")
	ErrMalformedToken = errors.New("malformed bearer token")
)

// Claims lists the payload fields the backend is known to put in its tokens.
// Different backend versions name the user id differently.
type Claims struct {
	ID       string `json:"_id"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity returns the first user id field that is set.
func (c *Claims) Identity() string {
	switch {
	case c.UserID != "":
		return c.UserID
	case c.ID != "":
		return c.ID
	default:
		return c.RegisteredClaims.Subject
	}
}

// Decode parses a token without verifying its signature.
func Decode(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

// BearerToken extracts the token from an Authorization header value.
// A header without the Bearer scheme is taken as the raw token.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

// Session is the signed-in user as seen by the web app. It is created once per
// request (or page) and passed explicitly to whatever needs it.
type Session struct {
	mu       sync.RWMutex
	token    string
	userID   string
	username string
}

// New builds a session from a raw token. A token that cannot be decoded still
// yields a usable session (the backend decides whether it is valid); only the
// personalisation fields stay empty.
func New(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	s := &Session{token: token}
	claims, err := Decode(token)
	if err != nil {
		return s, err
	}
	s.userID = claims.Identity()
	s.username = claims.Username
	return s, nil
}

// FromHeader builds a session from an Authorization header value.
func FromHeader(header string) (*Session, error) {
	return New(BearerToken(header))
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Active reports whether the session still holds a credential.
func (s *Session) Active() bool {
	return s.Token() != ""
}

// Clear drops the stored credential. Called when the backend answers 401.
// It reports whether there was a credential to drop.
func (s *Session) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.token != ""
	s.token = ""
	s.userID = ""
	s.username = ""
	return had
}
