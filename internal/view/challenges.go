package view

import (
	"fmt"
	"strings"
	"time"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
)

// ChallengeRole is the viewer's side of a challenge.
type ChallengeRole string

const (
	RoleSender    ChallengeRole = "sender"
	RoleRecipient ChallengeRole = "recipient"
	RoleNone      ChallengeRole = "none"
)

// ExerciseDisplay is the exercise a challenge is about, whichever source it came from.
type ExerciseDisplay struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Type        domain.ExerciseType `json:"type,omitempty"`
	Difficulty  domain.Difficulty   `json:"difficulty,omitempty"`
	Duration    *int                `json:"duration,omitempty"`
	Reps        *int                `json:"reps,omitempty"`
	Detail      string              `json:"detail"`
}

type ChallengeView struct {
	Challenge     model.Challenge  `json:"challenge"`
	Role          ChallengeRole    `json:"role"`
	Counterpart   model.User       `json:"counterpart"`
	Headline      string           `json:"headline"`
	Exercise      *ExerciseDisplay `json:"exercise,omitempty"`
	Compact       bool             `json:"compact"`
	TimeRemaining *TimeRemaining   `json:"timeRemaining,omitempty"`
	IsActive      bool             `json:"isActive"`
	CanAccept     bool             `json:"canAccept"`
	CanDecline    bool             `json:"canDecline"`
	CanComplete   bool             `json:"canComplete"`
}

// IsActiveChallenge reports whether c is accepted and not yet completed.
func IsActiveChallenge(c *model.Challenge) bool {
	return c != nil && c.Status == domain.ChallengeAccepted && !c.IsComplete
}

// CanSendChallenge is false while the viewer has an active challenge.
func CanSendChallenge(active *model.Challenge) bool {
	return !IsActiveChallenge(active)
}

func challengeRole(c model.Challenge, viewerID string) ChallengeRole {
	switch {
	case viewerID == "":
		return RoleNone
	case c.ToUser.ID == viewerID:
		return RoleRecipient
	case c.FromUser.ID == viewerID:
		return RoleSender
	}
	return RoleNone
}

// ResolveExercise prefers the populated exercise and falls back to the
// snapshot field by field. It returns nil when the challenge has neither.
func ResolveExercise(c model.Challenge) *ExerciseDisplay {
	live := c.ExerciseID.Populated()
	snap := c.ExerciseSnapshot
	if live == nil && snap == nil {
		return nil
	}
	if snap == nil {
		snap = &domain.ExerciseSnapshot{}
	}

	d := &ExerciseDisplay{
		Name:        snap.Name,
		Description: snap.Description,
		Type:        snap.Type,
		Difficulty:  snap.Difficulty,
		Duration:    snap.Duration,
		Reps:        snap.Reps,
	}
	if live != nil {
		d.Name = firstNonEmpty(live.Name, d.Name)
		d.Description = firstNonEmpty(live.Description, d.Description)
		if live.Type != "" {
			d.Type = live.Type
		}
		if live.Difficulty != "" {
			d.Difficulty = live.Difficulty
		}
		if live.Duration != nil {
			d.Duration = live.Duration
		}
		if live.Reps != nil {
			d.Reps = live.Reps
		}
	}
	d.Detail = ExerciseDetail(d.Type, d.Difficulty, d.Duration, d.Reps)
	return d
}

// ExerciseDetail is the one-line summary under an exercise name, e.g. "core · easy · 60s".
func ExerciseDetail(t domain.ExerciseType, diff domain.Difficulty, duration, reps *int) string {
	var parts []string
	if t != "" {
		parts = append(parts, string(t))
	}
	if diff != "" {
		parts = append(parts, string(diff))
	}
	if duration != nil && *duration > 0 {
		parts = append(parts, fmt.Sprintf("%ds", *duration))
	}
	if reps != nil && *reps > 0 {
		parts = append(parts, fmt.Sprintf("%d reps", *reps))
	}
	return strings.Join(parts, " · ")
}

// BuildChallenge derives the card state for one challenge. hasActive is whether
// the viewer currently has an active challenge of their own.
func BuildChallenge(c model.Challenge, viewerID string, hasActive bool, now time.Time) ChallengeView {
	v := ChallengeView{
		Challenge: c,
		Role:      challengeRole(c, viewerID),
		Exercise:  ResolveExercise(c),
		IsActive:  IsActiveChallenge(&c),
	}
	v.Compact = v.Exercise == nil

	switch v.Role {
	case RoleRecipient:
		v.Counterpart = c.FromUser
		v.Headline = c.FromUser.Username + " challenged you"
	case RoleSender:
		v.Counterpart = c.ToUser
		v.Headline = "You challenged " + c.ToUser.Username
	default:
		v.Headline = c.FromUser.Username + " challenged " + c.ToUser.Username
	}

	if c.Status == domain.ChallengeAccepted && c.Deadline != nil {
		tr := FormatTimeRemaining(*c.Deadline, now)
		v.TimeRemaining = &tr
	}

	recipient := v.Role == RoleRecipient
	pending := c.Status == domain.ChallengePending
	v.CanDecline = recipient && pending
	v.CanAccept = v.CanDecline && !hasActive
	v.CanComplete = recipient && v.IsActive
	return v
}

func BuildChallenges(challenges []model.Challenge, viewerID string, active *model.Challenge, now time.Time) []ChallengeView {
	hasActive := IsActiveChallenge(active)
	out := make([]ChallengeView, 0, len(challenges))
	for _, c := range challenges {
		out = append(out, BuildChallenge(c, viewerID, hasActive, now))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
