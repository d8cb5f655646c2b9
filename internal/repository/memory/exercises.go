package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
)

type exerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]domain.Exercise
}

func NewExerciseRepository() repository.ExerciseRepository {
	return &exerciseRepository{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *exerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = *exercise
	return exercise.ID, nil
}

func (r *exerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

// List orders by type then name, like the Mongo implementation.
func (r *exerciseRepository) List(_ context.Context) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *exerciseRepository) Random(ctx context.Context) (*domain.Exercise, error) {
	all, _ := r.List(ctx)
	if len(all) == 0 {
		return nil, repository.ErrNotFound
	}
	e := all[rand.Intn(len(all))]
	return &e, nil
}
