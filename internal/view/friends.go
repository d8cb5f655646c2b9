// Package view maps backend entities to viewer-relative display state. Every
// function here is pure: it takes the entity and the viewer's id and never
// caches its answer, so a refetch can never leave a stale flag behind.
package view

import (
	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
)

// FriendState is the viewer's side of a friendship record.
type FriendState string

const (
	FriendPendingSent     FriendState = "pending_sent"
	FriendPendingReceived FriendState = "pending_received"
	FriendAccepted        FriendState = "accepted"
)

type FriendDisplay struct {
	RequestID string      `json:"requestId"`
	Friend    model.User  `json:"friend"`
	State     FriendState `json:"state"`
	// CanRespond is only ever true for the recipient of a pending request.
	CanRespond bool `json:"canRespond"`
}

// GetFriendDisplay resolves which party the viewer is. ok is false when the
// viewer is neither party or the request was rejected.
func GetFriendDisplay(fr model.FriendRequest, viewerID string) (FriendDisplay, bool) {
	if viewerID == "" {
		return FriendDisplay{}, false
	}

	var friend model.User
	isRequester := fr.Requester.ID == viewerID
	switch {
	case isRequester:
		friend = fr.Recipient
	case fr.Recipient.ID == viewerID:
		friend = fr.Requester
	default:
		return FriendDisplay{}, false
	}

	d := FriendDisplay{RequestID: fr.ID, Friend: friend}
	switch fr.Status {
	case domain.FriendshipAccepted:
		d.State = FriendAccepted
	case domain.FriendshipPending:
		if isRequester {
			d.State = FriendPendingSent
		} else {
			d.State = FriendPendingReceived
			d.CanRespond = true
		}
	default:
		return FriendDisplay{}, false
	}
	return d, true
}

// FriendDisplays maps a friends list, dropping records the viewer cannot see.
func FriendDisplays(friends []model.FriendRequest, viewerID string) []FriendDisplay {
	out := make([]FriendDisplay, 0, len(friends))
	for _, fr := range friends {
		if d, ok := GetFriendDisplay(fr, viewerID); ok {
			out = append(out, d)
		}
	}
	return out
}

// AcceptedFriends lists the users the viewer may challenge.
func AcceptedFriends(friends []model.FriendRequest, viewerID string) []model.User {
	var out []model.User
	for _, d := range FriendDisplays(friends, viewerID) {
		if d.State == FriendAccepted {
			out = append(out, d.Friend)
		}
	}
	return out
}

// PendingRequestFrom finds the pending request sent to the viewer by username.
// It backs accepting a request from a profile page, which only knows the username.
func PendingRequestFrom(friends []model.FriendRequest, viewerID, username string) (model.FriendRequest, bool) {
	for _, fr := range friends {
		if fr.Status == domain.FriendshipPending && fr.Recipient.ID == viewerID && fr.Requester.Username == username {
			return fr, true
		}
	}
	return model.FriendRequest{}, false
}
