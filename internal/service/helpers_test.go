package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
	"shukuma/webapp/internal/repository/memory"
)

type fixture struct {
	users       repository.UserRepository
	exercises   repository.ExerciseRepository
	posts       repository.PostRepository
	friendships repository.FriendshipRepository
	challenges  repository.ChallengeRepository

	community *communityService
	clock     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:       memory.NewUserRepository(),
		exercises:   memory.NewExerciseRepository(),
		posts:       memory.NewPostRepository(),
		friendships: memory.NewFriendshipRepository(),
		challenges:  memory.NewChallengeRepository(),
		clock:       time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	f.community = NewCommunityService(f.users, f.exercises, f.posts, f.friendships, f.challenges).(*communityService)
	f.community.now = func() time.Time { return f.clock }
	return f
}

func (f *fixture) user(t *testing.T, username string) primitive.ObjectID {
	t.Helper()
	id, err := f.users.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) befriend(t *testing.T, a, b primitive.ObjectID) {
	t.Helper()
	_, err := f.friendships.Create(context.Background(), &domain.Friendship{
		RequesterID: a,
		RecipientID: b,
		Status:      domain.FriendshipAccepted,
	})
	require.NoError(t, err)
}

func (f *fixture) exercise(t *testing.T, name string) primitive.ObjectID {
	t.Helper()
	reps := 20
	id, err := f.exercises.Create(context.Background(), &domain.Exercise{
		Name:       name,
		Type:       domain.ExerciseUpperBody,
		Difficulty: domain.DifficultyMedium,
		Reps:       &reps,
	})
	require.NoError(t, err)
	return id
}
