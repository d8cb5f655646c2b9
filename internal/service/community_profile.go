package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

// Profile returns a user's public stats and the viewer's relationship to them.
// Streaks are not tracked by this backend, so currentStreak is always zero.
func (s *communityService) Profile(ctx context.Context, viewerID primitive.ObjectID, username string) (*model.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	friendIDs, err := s.friendIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	dir, err := loadUsers(ctx, s.userRepo, friendIDs)
	if err != nil {
		return nil, err
	}
	friends := make([]model.User, 0, len(friendIDs))
	for _, id := range friendIDs {
		friends = append(friends, dir.get(id))
	}

	completed, err := s.challengeRepo.CountCompletedByRecipient(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	relation, err := s.relation(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		User:                toUser(*user),
		Friends:             friends,
		FriendCount:         len(friends),
		ExercisesCompleted:  user.ExercisesCompleted,
		CompletedChallenges: completed,
		FriendRequestStatus: relation,
	}, nil
}

func (s *communityService) relation(ctx context.Context, viewerID, userID primitive.ObjectID) (model.ProfileRelation, error) {
	if viewerID == userID {
		return model.RelationSelf, nil
	}
	f, err := s.friendshipRepo.FindBetween(ctx, viewerID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.RelationCanRequest, nil
	}
	if err != nil {
		return "", err
	}
	switch {
	case f.Status == domain.FriendshipAccepted:
		return model.RelationAccepted, nil
	case f.RequesterID == viewerID:
		return model.RelationPending, nil
	default:
		return model.RelationCanAccept, nil
	}
}
