package community

import (
	"context"
	"sync"

	"shukuma/webapp/internal/view"
)

// Resource is one independently invalidatable cache entry: a value plus its
// own loading and error state. A failed refresh keeps the previous value.
type Resource[T any] struct {
	name  string
	fetch func(ctx context.Context) (T, error)

	mu       sync.RWMutex
	value    T
	status   view.ResourceStatus
	inFlight int
}

func NewResource[T any](name string, fetch func(ctx context.Context) (T, error)) *Resource[T] {
	return &Resource[T]{name: name, fetch: fetch}
}

func (r *Resource[T]) Name() string {
	return r.name
}

// Get returns the current value and status.
func (r *Resource[T]) Get() (T, view.ResourceStatus) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.status
}

// Refresh refetches the value. Concurrent refreshes of the same resource are
// not coalesced; whichever finishes last wins. Loading stays set until every
// refresh in flight has returned.
func (r *Resource[T]) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.inFlight++
	r.status.Loading = true
	r.mu.Unlock()

	value, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight--
	r.status.Loading = r.inFlight > 0
	if err != nil {
		r.status.Error = errorMessage(err)
		return err
	}
	r.value = value
	r.status.Loaded = true
	r.status.Error = ""
	return nil
}
