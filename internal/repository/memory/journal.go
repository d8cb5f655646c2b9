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

type journalRepository struct {
	mu      sync.RWMutex
	entries map[primitive.ObjectID]domain.JournalEntry
}

func NewJournalRepository() repository.JournalRepository {
	return &journalRepository{entries: make(map[primitive.ObjectID]domain.JournalEntry)}
}

func (r *journalRepository) Create(_ context.Context, e *domain.JournalEntry) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.entries[e.ID] = *e
	return e.ID, nil
}

func (r *journalRepository) GetByID(_ context.Context, id, userID primitive.ObjectID) (*domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *journalRepository) List(_ context.Context, f repository.JournalFilter) ([]domain.JournalEntry, int64, error) {
	r.mu.RLock()
	matched := []domain.JournalEntry{}
	for _, e := range r.entries {
		if e.UserID != f.UserID {
			continue
		}
		if f.From != nil && e.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && e.Date.After(*f.To) {
			continue
		}
		matched = append(matched, e)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Skip >= len(matched) {
		return []domain.JournalEntry{}, total, nil
	}
	page := matched[f.Skip:]
	if f.Limit > 0 && len(page) > f.Limit {
		page = page[:f.Limit]
	}
	return page, total, nil
}

func (r *journalRepository) Update(_ context.Context, e *domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.entries[e.ID]
	if !ok || stored.UserID != e.UserID {
		return repository.ErrNotFound
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = time.Now().UTC()
	r.entries[e.ID] = *e
	return nil
}

func (r *journalRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}
