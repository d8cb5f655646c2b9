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

type trackRepository struct {
	mu     sync.RWMutex
	tracks map[primitive.ObjectID]domain.Track
}

func NewTrackRepository() repository.TrackRepository {
	return &trackRepository{tracks: make(map[primitive.ObjectID]domain.Track)}
}

func (r *trackRepository) Create(_ context.Context, t *domain.Track) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tracks {
		if existing.ObjectKey == t.ObjectKey {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now().UTC()
	r.tracks[t.ID] = *t
	return t.ID, nil
}

func (r *trackRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Track, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tracks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *trackRepository) List(_ context.Context) ([]domain.Track, error) {
	r.mu.RLock()
	out := make([]domain.Track, 0, len(r.tracks))
	for _, t := range r.tracks {
		out = append(out, t)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *trackRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tracks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tracks, id)
	return nil
}
