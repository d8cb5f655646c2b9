package view

import "shukuma/webapp/internal/model"

type Badge struct {
	Icon        string `json:"icon"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type badgeRule struct {
	badge Badge
	earn  func(p model.Profile) bool
}

var badgeRules = []badgeRule{
	{Badge{"fa-fire", "Week Warrior", "7+ day streak"}, func(p model.Profile) bool { return p.CurrentStreak >= 7 }},
	{Badge{"fa-medal", "Monthly Master", "30+ day streak"}, func(p model.Profile) bool { return p.CurrentStreak >= 30 }},
	{Badge{"fa-dumbbell", "Getting Started", "10+ workouts"}, func(p model.Profile) bool { return p.ExercisesCompleted >= 10 }},
	{Badge{"fa-trophy", "Dedicated", "50+ workouts"}, func(p model.Profile) bool { return p.ExercisesCompleted >= 50 }},
	{Badge{"fa-crown", "Champion", "100+ workouts"}, func(p model.Profile) bool { return p.ExercisesCompleted >= 100 }},
	{Badge{"fa-users", "Social Butterfly", "5+ friends"}, func(p model.Profile) bool { return p.FriendCount >= 5 }},
	{Badge{"fa-handshake", "Challenge Accepted", "First challenge completed"}, func(p model.Profile) bool { return p.CompletedChallenges >= 1 }},
	{Badge{"fa-bolt", "Challenger", "5+ challenges completed"}, func(p model.Profile) bool { return p.CompletedChallenges >= 5 }},
	{Badge{"fa-star", "Challenge Master", "10+ challenges completed"}, func(p model.Profile) bool { return p.CompletedChallenges >= 10 }},
}

// AchievementBadges returns the earned badges in display order.
func AchievementBadges(p model.Profile) []Badge {
	badges := []Badge{}
	for _, r := range badgeRules {
		if r.earn(p) {
			badges = append(badges, r.badge)
		}
	}
	return badges
}

// FriendAction is the friend button shown on a profile.
type FriendAction string

const (
	ActionNone    FriendAction = "none"
	ActionAdd     FriendAction = "add"
	ActionPending FriendAction = "pending"
	ActionRespond FriendAction = "respond"
	ActionFriends FriendAction = "friends"
)

func ProfileFriendAction(rel model.ProfileRelation) FriendAction {
	switch rel {
	case model.RelationCanRequest, model.RelationNone:
		return ActionAdd
	case model.RelationPending:
		return ActionPending
	case model.RelationCanAccept:
		return ActionRespond
	case model.RelationAccepted:
		return ActionFriends
	}
	return ActionNone
}

type ProfileView struct {
	Profile      model.Profile `json:"profile"`
	IsSelf       bool          `json:"isSelf"`
	Badges       []Badge       `json:"badges"`
	FriendAction FriendAction  `json:"friendAction"`
}

func BuildProfile(p model.Profile, viewerID string) ProfileView {
	isSelf := p.FriendRequestStatus == model.RelationSelf || (viewerID != "" && p.User.ID == viewerID)
	action := ProfileFriendAction(p.FriendRequestStatus)
	if isSelf {
		action = ActionNone
	}
	return ProfileView{
		Profile:      p,
		IsSelf:       isSelf,
		Badges:       AchievementBadges(p),
		FriendAction: action,
	}
}
