package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
)

func intPtr(v int) *int { return &v }

func challenge(status domain.ChallengeStatus) model.Challenge {
	return model.Challenge{ID: "c1", FromUser: alice, ToUser: bob, Status: status, DurationDays: 7}
}

func activeFor(user model.User) *model.Challenge {
	return &model.Challenge{ID: "busy", FromUser: carol, ToUser: user, Status: domain.ChallengeAccepted}
}

func TestActiveChallengeBlocksSendAndAccept(t *testing.T) {
	now := time.Now()
	pending := challenge(domain.ChallengePending)

	t.Run("with an active challenge", func(t *testing.T) {
		active := activeFor(bob)
		assert.False(t, CanSendChallenge(active))

		v := BuildChallenges([]model.Challenge{pending}, "u2", active, now)[0]
		assert.False(t, v.CanAccept)
		assert.True(t, v.CanDecline, "declining stays possible")
	})

	t.Run("without one", func(t *testing.T) {
		assert.True(t, CanSendChallenge(nil))

		v := BuildChallenges([]model.Challenge{pending}, "u2", nil, now)[0]
		assert.True(t, v.CanAccept)
		assert.True(t, v.CanDecline)
	})

	t.Run("completed challenge is not active", func(t *testing.T) {
		done := activeFor(bob)
		done.IsComplete = true
		done.Status = domain.ChallengeCompleted
		assert.True(t, CanSendChallenge(done))
	})
}

func TestBuildChallenge_Roles(t *testing.T) {
	now := time.Now()
	deadline := now.Add(2*day + 3*time.Hour)
	accepted := challenge(domain.ChallengeAccepted)
	accepted.Deadline = &deadline

	recipient := BuildChallenge(accepted, "u2", true, now)
	assert.Equal(t, RoleRecipient, recipient.Role)
	assert.Equal(t, "A challenged you", recipient.Headline)
	assert.Equal(t, alice, recipient.Counterpart)
	assert.True(t, recipient.IsActive)
	assert.True(t, recipient.CanComplete)
	require.NotNil(t, recipient.TimeRemaining)
	assert.Equal(t, "2d 3h remaining", recipient.TimeRemaining.Text)

	sender := BuildChallenge(accepted, "u1", false, now)
	assert.Equal(t, RoleSender, sender.Role)
	assert.Equal(t, "You challenged B", sender.Headline)
	assert.False(t, sender.CanComplete)
	assert.False(t, sender.CanAccept)
	assert.False(t, sender.CanDecline)

	pendingForSender := BuildChallenge(challenge(domain.ChallengePending), "u1", false, now)
	assert.False(t, pendingForSender.CanAccept)
	assert.Nil(t, pendingForSender.TimeRemaining)
}

func TestResolveExercise_SnapshotFallback(t *testing.T) {
	c := challenge(domain.ChallengePending)
	c.ExerciseSnapshot = &domain.ExerciseSnapshot{
		Name:       "Squat",
		Type:       domain.ExerciseLowerBody,
		Difficulty: domain.DifficultyMedium,
		Reps:       intPtr(20),
	}

	for name, ref := range map[string]*model.ExerciseRef{
		"absent":       nil,
		"id only":      {ID: "e1"},
		"empty object": {},
	} {
		t.Run(name, func(t *testing.T) {
			c.ExerciseID = ref
			var ex *ExerciseDisplay
			require.NotPanics(t, func() { ex = ResolveExercise(c) })
			require.NotNil(t, ex)
			assert.Equal(t, "Squat", ex.Name)
			assert.Equal(t, domain.ExerciseLowerBody, ex.Type)
			assert.Equal(t, domain.DifficultyMedium, ex.Difficulty)
			assert.Equal(t, "lowerbody · medium · 20 reps", ex.Detail)
		})
	}
}

func TestResolveExercise_PrefersPopulated(t *testing.T) {
	c := challenge(domain.ChallengePending)
	c.ExerciseID = &model.ExerciseRef{ID: "e1", Exercise: &model.Exercise{
		ID: "e1", Name: "Plank", Type: domain.ExerciseCore, Duration: intPtr(60),
	}}
	c.ExerciseSnapshot = &domain.ExerciseSnapshot{Name: "Old plank", Difficulty: domain.DifficultyEasy}

	ex := ResolveExercise(c)
	require.NotNil(t, ex)
	assert.Equal(t, "Plank", ex.Name)
	assert.Equal(t, domain.DifficultyEasy, ex.Difficulty, "missing field falls back to the snapshot")
	assert.Equal(t, "core · easy · 60s", ex.Detail)
}

func TestResolveExercise_NoneIsCompact(t *testing.T) {
	c := challenge(domain.ChallengePending)
	assert.Nil(t, ResolveExercise(c))
	assert.True(t, BuildChallenge(c, "u2", false, time.Now()).Compact)
}
