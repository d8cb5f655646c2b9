package community

import (
	"errors"

	"shukuma/webapp/internal/upstream"
)

var (
	ErrNotSignedIn       = errors.New("not signed in")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrUsernameRequired  = errors.New("username is required")
	ErrNoFriendSelected  = errors.New("select a friend to challenge")
	ErrActiveChallenge   = errors.New("you already have an active challenge")
	ErrChallengeInFlight = errors.New("a challenge is already being sent")
	ErrCommentInFlight   = errors.New("a comment is already being submitted for this post")
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrRequestInFlight   = errors.New("a friend request is already being processed")
	ErrPostNotFound      = errors.New("post not found")
)

// alreadyLiked is the backend's answer to a repeated like.
const alreadyLiked = "Already liked this post"

// errorMessage is what the page shows for a failed call: the backend's own
// message for business errors, the local message for validation errors, and a
// generic one for transport failures.
func errorMessage(err error) string {
	var apiErr *upstream.APIError
	switch {
	case errors.As(err, &apiErr):
		return upstream.MessageOf(err)
	case errors.Is(err, upstream.ErrTransport):
		return upstream.NetworkErrorMessage
	}
	return err.Error()
}

// Message converts an error returned by a page operation into user-facing text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return errorMessage(err)
}

func isAlreadyLiked(err error) bool {
	var apiErr *upstream.APIError
	return errors.As(err, &apiErr) && apiErr.Message == alreadyLiked
}
