package pool

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aretw0/ludus/pkg/domain"
)

// Registry holds at most one pool per type.
type Registry struct {
	mu    sync.RWMutex
	pools map[reflect.Type]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pools: make(map[reflect.Type]any)}
}

// Register creates the pool for T unless one exists, and returns the pool in place.
// A second Register for the same type does not prewarm again.
func Register[T any](r *Registry, factory func() T, size int, opts ...Option) *Pool[T] {
	typ := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.pools[typ]; ok {
		return p.(*Pool[T])
	}
	p := New(factory, size, opts...)
	r.pools[typ] = p
	return p
}

// Of returns the pool registered for T.
func Of[T any](r *Registry) (*Pool[T], error) {
	typ := reflect.TypeFor[T]()

	r.mu.RLock()
	p, ok := r.pools[typ]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", typ, domain.ErrPoolMissing)
	}
	return p.(*Pool[T]), nil
}

// Get takes an instance from the pool registered for T.
func Get[T any](r *Registry) (T, error) {
	p, err := Of[T](r)
	if err != nil {
		var zero T
		return zero, err
	}
	return p.Get(), nil
}

// Put returns v to the pool registered for T.
func Put[T any](r *Registry, v T) error {
	p, err := Of[T](r)
	if err != nil {
		return err
	}
	p.Put(v)
	return nil
}
