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

type challengeRepository struct {
	mu         sync.RWMutex
	challenges map[primitive.ObjectID]domain.Challenge
}

func NewChallengeRepository() repository.ChallengeRepository {
	return &challengeRepository{challenges: make(map[primitive.ObjectID]domain.Challenge)}
}

func (r *challengeRepository) Create(_ context.Context, c *domain.Challenge) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.ChallengePending
	}
	r.challenges[c.ID] = *c
	return c.ID, nil
}

func (r *challengeRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.challenges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *challengeRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Challenge, error) {
	r.mu.RLock()
	out := []domain.Challenge{}
	for _, c := range r.challenges {
		if c.FromUserID == userID || c.ToUserID == userID {
			out = append(out, c)
		}
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *challengeRepository) FindActiveForRecipient(_ context.Context, userID primitive.ObjectID, now time.Time) (*domain.Challenge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.challenges {
		if c.ToUserID == userID && c.IsActive(now) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *challengeRepository) CountCompletedByRecipient(_ context.Context, userID primitive.ObjectID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, c := range r.challenges {
		if c.ToUserID == userID && c.Status == domain.ChallengeCompleted {
			n++
		}
	}
	return n, nil
}

func (r *challengeRepository) Update(_ context.Context, c *domain.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.challenges[c.ID]; !ok {
		return repository.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	r.challenges[c.ID] = *c
	return nil
}
