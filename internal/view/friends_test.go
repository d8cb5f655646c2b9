package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
)

var (
	alice = model.User{ID: "u1", Username: "A"}
	bob   = model.User{ID: "u2", Username: "B"}
	carol = model.User{ID: "u3", Username: "C"}
)

func friendRequest(status domain.FriendshipStatus) model.FriendRequest {
	return model.FriendRequest{ID: "f1", Requester: alice, Recipient: bob, Status: status}
}

func TestGetFriendDisplay_EveryPartyGetsExactlyOneState(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.FriendshipStatus
		viewer     string
		wantState  FriendState
		wantFriend model.User
		canRespond bool
	}{
		{"requester sees pending", domain.FriendshipPending, "u1", FriendPendingSent, bob, false},
		{"recipient can respond", domain.FriendshipPending, "u2", FriendPendingReceived, alice, true},
		{"requester sees accepted", domain.FriendshipAccepted, "u1", FriendAccepted, bob, false},
		{"recipient sees accepted", domain.FriendshipAccepted, "u2", FriendAccepted, alice, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := GetFriendDisplay(friendRequest(tt.status), tt.viewer)
			require.True(t, ok)
			assert.Equal(t, tt.wantState, d.State)
			assert.Equal(t, tt.wantFriend, d.Friend)
			assert.Equal(t, tt.canRespond, d.CanRespond)
			assert.Equal(t, "f1", d.RequestID)
		})
	}
}

func TestGetFriendDisplay_RequesterNeverResponds(t *testing.T) {
	for _, status := range []domain.FriendshipStatus{domain.FriendshipPending, domain.FriendshipAccepted, domain.FriendshipRejected} {
		d, _ := GetFriendDisplay(friendRequest(status), "u1")
		assert.False(t, d.CanRespond, "status %s", status)
	}
}

func TestGetFriendDisplay_Hidden(t *testing.T) {
	_, ok := GetFriendDisplay(friendRequest(domain.FriendshipPending), "u3")
	assert.False(t, ok, "outsider")

	_, ok = GetFriendDisplay(friendRequest(domain.FriendshipPending), "")
	assert.False(t, ok, "anonymous")

	_, ok = GetFriendDisplay(friendRequest(domain.FriendshipRejected), "u2")
	assert.False(t, ok, "rejected")
}

func TestAcceptedFriends(t *testing.T) {
	friends := []model.FriendRequest{
		{ID: "f1", Requester: alice, Recipient: bob, Status: domain.FriendshipAccepted},
		{ID: "f2", Requester: carol, Recipient: alice, Status: domain.FriendshipPending},
		{ID: "f3", Requester: carol, Recipient: alice, Status: domain.FriendshipAccepted},
	}

	assert.Equal(t, []model.User{bob, carol}, AcceptedFriends(friends, "u1"))
	assert.Len(t, FriendDisplays(friends, "u1"), 3)

	fr, ok := PendingRequestFrom(friends, "u1", "C")
	require.True(t, ok)
	assert.Equal(t, "f2", fr.ID)

	_, ok = PendingRequestFrom(friends, "u1", "B")
	assert.False(t, ok)
}
