package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
)

func TestBuildPost_DerivesFlagsFromLikesAndAuthors(t *testing.T) {
	now := time.Now()
	post := model.Post{
		ID:        "p1",
		Author:    alice,
		Likes:     []string{"u2", "u3"},
		CreatedAt: now,
		Comments: []model.Comment{
			{ID: "c1", Author: bob, CreatedAt: now},
			{ID: "c2", Author: carol, CreatedAt: now},
		},
	}

	byBob := BuildPost(post, "u2", now)
	assert.True(t, byBob.Liked)
	assert.Equal(t, 2, byBob.LikeCount)
	assert.False(t, byBob.IsMine)
	assert.True(t, byBob.Comments[0].CanDelete)
	assert.False(t, byBob.Comments[1].CanDelete)

	byAuthor := BuildPost(post, "u1", now)
	assert.False(t, byAuthor.Liked)
	assert.True(t, byAuthor.IsMine)
	assert.True(t, byAuthor.Comments[0].CanDelete)
	assert.True(t, byAuthor.Comments[1].CanDelete)

	post.Likes = append(post.Likes, "u1")
	assert.True(t, BuildPost(post, "u1", now).Liked)
}

func TestBuildCommunity_PartialSnapshot(t *testing.T) {
	status := map[string]ResourceStatus{
		ResourceFeed:    {Loaded: true},
		ResourceFriends: {Error: "Network error"},
	}
	v := BuildCommunity(Snapshot{
		ViewerID: "u1",
		Feed:     []model.Post{{ID: "p1", Author: bob}},
		Status:   status,
	}, time.Now())

	assert.Len(t, v.Posts, 1)
	assert.Empty(t, v.Friends)
	assert.Empty(t, v.ChallengeTargets)
	assert.Nil(t, v.ActiveChallenge)
	assert.True(t, v.CanSendChallenge)
	assert.Equal(t, "Network error", v.Resources[ResourceFriends].Error)
}

func TestBuildCommunity_ActiveChallenge(t *testing.T) {
	active := activeFor(alice)
	v := BuildCommunity(Snapshot{
		ViewerID:   "u1",
		Challenges: []model.Challenge{*active, {ID: "c2", FromUser: bob, ToUser: alice, Status: domain.ChallengePending}},
		Active:     active,
	}, time.Now())

	assert.False(t, v.CanSendChallenge)
	require.NotNil(t, v.ActiveChallenge)
	assert.True(t, v.ActiveChallenge.CanComplete)
	assert.False(t, v.Challenges[1].CanAccept)
}

func TestBuildProfile(t *testing.T) {
	p := model.Profile{
		User:                bob,
		CurrentStreak:       8,
		ExercisesCompleted:  55,
		FriendCount:         5,
		CompletedChallenges: 1,
		FriendRequestStatus: model.RelationCanAccept,
	}

	v := BuildProfile(p, "u1")
	assert.Equal(t, ActionRespond, v.FriendAction)
	assert.False(t, v.IsSelf)

	var labels []string
	for _, b := range v.Badges {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Week Warrior", "Getting Started", "Dedicated", "Social Butterfly", "Challenge Accepted"}, labels)

	self := BuildProfile(p, "u2")
	assert.True(t, self.IsSelf)
	assert.Equal(t, ActionNone, self.FriendAction)

	assert.Empty(t, AchievementBadges(model.Profile{}))
}

func TestDisplayHelpers(t *testing.T) {
	info, ok := LookupMood(domain.MoodOkay)
	require.True(t, ok)
	assert.Equal(t, "Okay", info.Label)

	_, ok = LookupMood("")
	assert.False(t, ok)
	assert.Len(t, Moods(), 5)

	assert.Equal(t, "fa-cloud-rain", TrackIcon("Gentle Rain"))
	assert.Equal(t, "fa-water", TrackIcon("Ocean Waves"))
	assert.Equal(t, "fa-volume-high", TrackIcon("Brown noise"))
}
