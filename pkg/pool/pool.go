package pool

import (
	"log/slog"
	"reflect"
	"sync"

	"github.com/aretw0/ludus/internal/logging"
)

// Poolable is implemented by values that need to reset themselves when they
// move in or out of a pool.
type Poolable interface {
	OnAcquire()
	OnRelease()
}

type options struct {
	logger *slog.Logger
}

// Option defines a functional option for configuring a Pool.
type Option func(*options)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Pool is a FIFO of idle instances of T. It is safe for concurrent use.
type Pool[T any] struct {
	name    string
	factory func() T
	logger  *slog.Logger

	mu      sync.Mutex
	idle    []T
	created int
}

// New creates a pool and prewarms it with size instances built by factory.
// A nil factory yields zero values of T.
func New[T any](factory func() T, size int, opts ...Option) *Pool[T] {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if factory == nil {
		factory = func() T {
			var zero T
			return zero
		}
	}

	p := &Pool[T]{
		name:    reflect.TypeFor[T]().String(),
		factory: factory,
		logger:  o.logger,
		idle:    make([]T, 0, max(size, 0)),
	}
	for range size {
		p.idle = append(p.idle, factory())
		p.created++
	}
	return p
}

// Get takes the oldest idle instance, or builds a new one when the pool is empty.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	var v T
	if len(p.idle) > 0 {
		v = p.idle[0]
		var zero T
		p.idle[0] = zero
		p.idle = p.idle[1:]
	} else {
		v = p.factory()
		p.created++
		p.logger.Debug("pool grew", "type", p.name, "created", p.created)
	}
	p.mu.Unlock()

	if pv, ok := any(v).(Poolable); ok {
		pv.OnAcquire()
	}
	return v
}

// Put returns v to the pool.
func (p *Pool[T]) Put(v T) {
	if pv, ok := any(v).(Poolable); ok {
		pv.OnRelease()
	}
	p.mu.Lock()
	p.idle = append(p.idle, v)
	p.mu.Unlock()
}

// Available returns the number of idle instances.
func (p *Pool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Created returns how many instances the factory has built so far.
func (p *Pool[T]) Created() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
