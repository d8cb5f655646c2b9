package view

import (
	"time"

	"shukuma/webapp/internal/model"
)

// Resource names shared with the orchestration layer.
const (
	ResourceFeed       = "feed"
	ResourceFriends    = "friends"
	ResourceChallenges = "challenges"
	ResourceActive     = "activeChallenge"
	ResourceExercises  = "exercises"
)

// ResourceStatus is one resource's independent loading/error state.
type ResourceStatus struct {
	Loading bool   `json:"loading"`
	Loaded  bool   `json:"loaded"`
	Error   string `json:"error,omitempty"`
}

// Snapshot is everything the community page currently holds.
type Snapshot struct {
	ViewerID   string
	Feed       []model.Post
	Friends    []model.FriendRequest
	Challenges []model.Challenge
	Active     *model.Challenge
	Exercises  []model.Exercise
	Status     map[string]ResourceStatus
}

type CommunityView struct {
	ViewerID         string                    `json:"viewerId"`
	Posts            []PostView                `json:"posts"`
	Friends          []FriendDisplay           `json:"friends"`
	ChallengeTargets []model.User              `json:"challengeTargets"`
	Challenges       []ChallengeView           `json:"challenges"`
	ActiveChallenge  *ChallengeView            `json:"activeChallenge"`
	Exercises        []model.Exercise          `json:"exercises"`
	CanSendChallenge bool                      `json:"canSendChallenge"`
	Resources        map[string]ResourceStatus `json:"resources"`
}

// BuildCommunity reconciles the independently loaded resources. Any of them
// may be missing; nothing here assumes one arrived before another.
func BuildCommunity(s Snapshot, now time.Time) CommunityView {
	v := CommunityView{
		ViewerID:         s.ViewerID,
		Posts:            BuildPosts(s.Feed, s.ViewerID, now),
		Friends:          FriendDisplays(s.Friends, s.ViewerID),
		ChallengeTargets: AcceptedFriends(s.Friends, s.ViewerID),
		Challenges:       BuildChallenges(s.Challenges, s.ViewerID, s.Active, now),
		Exercises:        s.Exercises,
		CanSendChallenge: CanSendChallenge(s.Active),
		Resources:        s.Status,
	}
	if v.ChallengeTargets == nil {
		v.ChallengeTargets = []model.User{}
	}
	if v.Exercises == nil {
		v.Exercises = []model.Exercise{}
	}
	if s.Active != nil {
		active := BuildChallenge(*s.Active, s.ViewerID, true, now)
		v.ActiveChallenge = &active
	}
	return v
}
