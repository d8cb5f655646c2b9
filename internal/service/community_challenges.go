package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

// Challenges returns every challenge the viewer sent or received.
func (s *communityService) Challenges(ctx context.Context, viewerID primitive.ObjectID) ([]model.Challenge, error) {
	challenges, err := s.challengeRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.populateChallenges(ctx, challenges)
}

// ActiveChallenge returns nil when the viewer has no accepted, unexpired challenge.
func (s *communityService) ActiveChallenge(ctx context.Context, viewerID primitive.ObjectID) (*model.Challenge, error) {
	active, err := s.challengeRepo.FindActiveForRecipient(ctx, viewerID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.populateChallenge(ctx, active)
}

func (s *communityService) SendChallenge(ctx context.Context, viewerID primitive.ObjectID, in ChallengeInput) (*model.Challenge, error) {
	if in.ToUserID == viewerID {
		return nil, ErrSelfChallenge
	}
	duration := in.DurationDays
	if duration == 0 {
		duration = domain.DefaultChallengeDays
	}
	if duration < domain.MinChallengeDays || duration > domain.MaxChallengeDays {
		return nil, ErrInvalidDuration
	}

	if _, err := s.userRepo.GetByID(ctx, in.ToUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	friends, err := s.areFriends(ctx, viewerID, in.ToUserID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriends
	}

	challenge := &domain.Challenge{
		FromUserID:   viewerID,
		ToUserID:     in.ToUserID,
		Message:      strings.TrimSpace(in.Message),
		Status:       domain.ChallengePending,
		DurationDays: duration,
	}
	if in.ExerciseID != nil {
		exercise, err := s.exerciseRepo.GetByID(ctx, *in.ExerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrExerciseNotFound
			}
			return nil, err
		}
		challenge.ExerciseID = in.ExerciseID
		challenge.ExerciseSnapshot = exercise.Snapshot()
	}

	s.challengeMu.Lock()
	defer s.challengeMu.Unlock()

	if err := s.ensureNoActive(ctx, in.ToUserID); err != nil {
		return nil, err
	}
	if _, err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return s.populateChallenge(ctx, challenge)
}

// RespondChallenge accepts or declines a pending challenge addressed to the viewer.
// Accepting starts the clock: deadline = acceptedAt + durationDays.
func (s *communityService) RespondChallenge(ctx context.Context, viewerID, challengeID primitive.ObjectID, accept bool) (*model.Challenge, error) {
	s.challengeMu.Lock()
	defer s.challengeMu.Unlock()

	challenge, err := s.recipientChallenge(ctx, viewerID, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.Status != domain.ChallengePending {
		return nil, ErrChallengeResponded
	}

	if accept {
		if err := s.ensureNoActive(ctx, viewerID); err != nil {
			return nil, err
		}
		now := s.now()
		deadline := now.Add(time.Duration(challenge.DurationDays) * 24 * time.Hour)
		challenge.Status = domain.ChallengeAccepted
		challenge.AcceptedAt = &now
		challenge.Deadline = &deadline
	} else {
		challenge.Status = domain.ChallengeDeclined
	}

	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, err
	}
	return s.populateChallenge(ctx, challenge)
}

func (s *communityService) CompleteChallenge(ctx context.Context, viewerID, challengeID primitive.ObjectID) (*model.Challenge, error) {
	s.challengeMu.Lock()
	defer s.challengeMu.Unlock()

	challenge, err := s.recipientChallenge(ctx, viewerID, challengeID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if challenge.Expired(now) {
		return nil, ErrChallengeExpired
	}
	if !challenge.IsActive(now) {
		return nil, ErrChallengeNotActive
	}

	challenge.Status = domain.ChallengeCompleted
	challenge.IsComplete = true
	challenge.CompletedAt = &now
	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, err
	}
	return s.populateChallenge(ctx, challenge)
}

func (s *communityService) recipientChallenge(ctx context.Context, viewerID, challengeID primitive.ObjectID) (*domain.Challenge, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if challenge.ToUserID != viewerID {
		return nil, ErrChallengeAccess
	}
	return challenge, nil
}

// ensureNoActive must be called with challengeMu held.
func (s *communityService) ensureNoActive(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.challengeRepo.FindActiveForRecipient(ctx, userID, s.now())
	switch {
	case err == nil:
		return ErrActiveChallenge
	case errors.Is(err, repository.ErrNotFound):
		return nil
	default:
		return err
	}
}

func (s *communityService) populateChallenge(ctx context.Context, c *domain.Challenge) (*model.Challenge, error) {
	out, err := s.populateChallenges(ctx, []domain.Challenge{*c})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *communityService) populateChallenges(ctx context.Context, challenges []domain.Challenge) ([]model.Challenge, error) {
	var userIDs []primitive.ObjectID
	exercises := make(map[primitive.ObjectID]*domain.Exercise)
	for _, c := range challenges {
		userIDs = append(userIDs, c.FromUserID, c.ToUserID)
		if c.ExerciseID == nil {
			continue
		}
		if _, seen := exercises[*c.ExerciseID]; seen {
			continue
		}
		ex, err := s.exerciseRepo.GetByID(ctx, *c.ExerciseID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// nil records a removed exercise; the snapshot covers it.
		exercises[*c.ExerciseID] = ex
	}

	dir, err := loadUsers(ctx, s.userRepo, userIDs)
	if err != nil {
		return nil, err
	}
	out := make([]model.Challenge, 0, len(challenges))
	for i := range challenges {
		out = append(out, dir.challenge(&challenges[i], exercises))
	}
	return out, nil
}
