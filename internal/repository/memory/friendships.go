package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
)

type friendshipRepository struct {
	mu      sync.RWMutex
	records map[primitive.ObjectID]domain.Friendship
}

func NewFriendshipRepository() repository.FriendshipRepository {
	return &friendshipRepository{records: make(map[primitive.ObjectID]domain.Friendship)}
}

func (r *friendshipRepository) Create(_ context.Context, f *domain.Friendship) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	if f.Status == "" {
		f.Status = domain.FriendshipPending
	}
	r.records[f.ID] = *f
	return f.ID, nil
}

func (r *friendshipRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Friendship, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *friendshipRepository) FindBetween(ctx context.Context, a, b primitive.ObjectID) (*domain.Friendship, error) {
	all, _ := r.ListByUser(ctx, a)
	for _, f := range all {
		if f.Involves(b) && f.Status != domain.FriendshipRejected {
			return &f, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListByUser returns newest first.
func (r *friendshipRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Friendship, error) {
	r.mu.RLock()
	out := []domain.Friendship{}
	for _, f := range r.records {
		if f.Involves(userID) {
			out = append(out, f)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *friendshipRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.FriendshipStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.records[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.Status = status
	f.UpdatedAt = time.Now().UTC()
	r.records[id] = f
	return nil
}
