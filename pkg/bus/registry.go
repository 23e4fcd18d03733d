package bus

import (
	"log/slog"
	"reflect"
	"slices"
	"sort"
	"sync"

	"github.com/aretw0/ludus/internal/logging"
)

type keyedHandler struct {
	fn func(any)
}

// Registry owns every topic and keyed channel of a host.
type Registry struct {
	logger *slog.Logger

	mu     sync.Mutex
	topics map[reflect.Type]any
	keyed  map[string][]*keyedHandler
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		logger: logging.NewNop(),
		topics: make(map[reflect.Type]any),
		keyed:  make(map[string][]*keyedHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For returns the topic for T, creating it on first use.
func For[T any](r *Registry) *Topic[T] {
	typ := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.topics[typ]; ok {
		return t.(*Topic[T])
	}
	t := &Topic[T]{name: typ.String(), logger: r.logger}
	r.topics[typ] = t
	return t
}

// Subscribe registers fn on the channel named key.
// The key is removed once its last subscription is cancelled.
// A nil fn is not registered.
func (r *Registry) Subscribe(key string, fn func(any)) *Subscription {
	if fn == nil {
		return &Subscription{cancel: func() {}}
	}
	h := &keyedHandler{fn: fn}

	r.mu.Lock()
	r.keyed[key] = append(r.keyed[key], h)
	r.mu.Unlock()

	return &Subscription{cancel: func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		subs := r.keyed[key]
		i := slices.Index(subs, h)
		if i < 0 {
			return
		}
		subs = slices.Delete(subs, i, i+1)
		if len(subs) == 0 {
			delete(r.keyed, key)
			return
		}
		r.keyed[key] = subs
	}}
}

// Publish delivers v to the subscribers of key and returns how many were called.
// Publishing on an unknown key does nothing.
func (r *Registry) Publish(key string, v any) int {
	r.mu.Lock()
	snapshot := slices.Clone(r.keyed[key])
	r.mu.Unlock()

	for _, h := range snapshot {
		h.fn(v)
	}
	r.logger.Debug("event published", "key", key, "subscribers", len(snapshot))
	return len(snapshot)
}

// Len returns the number of subscribers on key.
func (r *Registry) Len(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keyed[key])
}

// Keys returns the keys that currently have subscribers, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	keys := make([]string, 0, len(r.keyed))
	for k := range r.keyed {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	sort.Strings(keys)
	return keys
}
