package bus

import (
	"log/slog"
	"slices"
	"sync"
)

type handler[T any] struct {
	fn func(T)
}

// Topic is the typed channel for values of T.
type Topic[T any] struct {
	name   string
	logger *slog.Logger

	mu   sync.Mutex
	subs []*handler[T]
}

// Subscribe registers fn and returns its subscription.
// A nil fn is not registered; its subscription cancels nothing.
func (t *Topic[T]) Subscribe(fn func(T)) *Subscription {
	if fn == nil {
		return &Subscription{cancel: func() {}}
	}
	h := &handler[T]{fn: fn}

	t.mu.Lock()
	t.subs = append(t.subs, h)
	t.mu.Unlock()

	return &Subscription{cancel: func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if i := slices.Index(t.subs, h); i >= 0 {
			t.subs = slices.Delete(t.subs, i, i+1)
		}
	}}
}

// Publish delivers v to every current subscriber and returns how many were called.
func (t *Topic[T]) Publish(v T) int {
	t.mu.Lock()
	snapshot := slices.Clone(t.subs)
	t.mu.Unlock()

	for _, h := range snapshot {
		h.fn(v)
	}
	t.logger.Debug("event published", "topic", t.name, "subscribers", len(snapshot))
	return len(snapshot)
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}

// Name returns the topic name, derived from T.
func (t *Topic[T]) Name() string {
	return t.name
}
