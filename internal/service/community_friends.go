package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/model"
	"shukuma/webapp/internal/repository"
)

// Friends returns the viewer's pending and accepted requests, in both directions.
func (s *communityService) Friends(ctx context.Context, viewerID primitive.ObjectID) ([]model.FriendRequest, error) {
	all, err := s.friendshipRepo.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	var visible []domain.Friendship
	var ids []primitive.ObjectID
	for _, f := range all {
		if f.Status == domain.FriendshipRejected {
			continue
		}
		visible = append(visible, f)
		ids = append(ids, f.RequesterID, f.RecipientID)
	}
	dir, err := loadUsers(ctx, s.userRepo, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.FriendRequest, 0, len(visible))
	for i := range visible {
		out = append(out, dir.friendRequest(&visible[i]))
	}
	return out, nil
}

func (s *communityService) SendFriendRequest(ctx context.Context, viewerID primitive.ObjectID, username string) (*model.FriendRequest, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	target, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if target.ID == viewerID {
		return nil, ErrSelfFriendRequest
	}

	existing, err := s.friendshipRepo.FindBetween(ctx, viewerID, target.ID)
	switch {
	case err == nil && existing.Status == domain.FriendshipAccepted:
		return nil, ErrAlreadyFriends
	case err == nil:
		return nil, ErrFriendRequestExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	friendship := &domain.Friendship{
		RequesterID: viewerID,
		RecipientID: target.ID,
		Status:      domain.FriendshipPending,
	}
	if _, err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		return nil, err
	}
	dir, err := loadUsers(ctx, s.userRepo, []primitive.ObjectID{viewerID, target.ID})
	if err != nil {
		return nil, err
	}
	out := dir.friendRequest(friendship)
	return &out, nil
}

// RespondFriendRequest accepts or rejects a pending request addressed to the viewer.
func (s *communityService) RespondFriendRequest(ctx context.Context, viewerID, requestID primitive.ObjectID, accept bool) error {
	friendship, err := s.friendshipRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFriendRequestMissing
		}
		return err
	}
	if friendship.RecipientID != viewerID {
		return ErrFriendRequestAccess
	}
	if friendship.Status != domain.FriendshipPending {
		return ErrFriendRequestHandled
	}

	status := domain.FriendshipRejected
	if accept {
		status = domain.FriendshipAccepted
	}
	return s.friendshipRepo.UpdateStatus(ctx, requestID, status)
}

// friendIDs returns the ids of the user's accepted friends.
func (s *communityService) friendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	all, err := s.friendshipRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var ids []primitive.ObjectID
	for _, f := range all {
		if f.Status == domain.FriendshipAccepted {
			ids = append(ids, f.Other(userID))
		}
	}
	return ids, nil
}

func (s *communityService) areFriends(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	f, err := s.friendshipRepo.FindBetween(ctx, a, b)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return f.Status == domain.FriendshipAccepted, nil
}
