// Package singleton holds process-wide instances without package-level
// globals: a host owns the holders and passes them where they are needed.
package singleton

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/aretw0/ludus/pkg/domain"
)

// Instance is a slot for one value of T.
// The zero value is empty and ready to use.
type Instance[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool
}

// Set stores v if the slot is empty and reports whether it did.
// Later calls leave the first value in place.
func (i *Instance[T]) Set(v T) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.set {
		return false
	}
	i.value, i.set = v, true
	return true
}

// Claim stores v, or returns domain.ErrAlreadyClaimed when the slot is taken.
// The caller should discard its duplicate.
func (i *Instance[T]) Claim(v T) error {
	if !i.Set(v) {
		return fmt.Errorf("%s: %w", reflect.TypeFor[T](), domain.ErrAlreadyClaimed)
	}
	return nil
}

// Get returns the stored value and whether the slot holds one.
func (i *Instance[T]) Get() (T, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value, i.set
}

// MustGet returns the stored value and panics when the slot is empty.
func (i *Instance[T]) MustGet() T {
	v, ok := i.Get()
	if !ok {
		panic(fmt.Sprintf("singleton: %s not set", reflect.TypeFor[T]()))
	}
	return v
}

// Clear empties the slot, typically on shutdown.
func (i *Instance[T]) Clear() {
	i.mu.Lock()
	defer i.mu.Unlock()
	var zero T
	i.value, i.set = zero, false
}

// Lazy builds its value with factory on first access.
type Lazy[T any] struct {
	factory func() T

	mu    sync.Mutex
	value T
	built bool
}

// NewLazy returns a lazily built singleton.
func NewLazy[T any](factory func() T) *Lazy[T] {
	return &Lazy[T]{factory: factory}
}

// Get returns the value, building it once if needed.
func (l *Lazy[T]) Get() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.built {
		l.value = l.factory()
		l.built = true
	}
	return l.value
}

// Built reports whether the factory has run.
func (l *Lazy[T]) Built() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.built
}

// Reset drops the value; the next Get builds a new one.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value, l.built = zero, false
}
