package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/domain"
)

// Event is the JSON payload pushed to /events subscribers.
type Event struct {
	Type      domain.EventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	State     string           `json:"state,omitempty"`
	Peer      string           `json:"peer,omitempty"`
	DrainID   string           `json:"drain_id,omitempty"`
	Executed  int              `json:"executed,omitempty"`
	Failed    int              `json:"failed,omitempty"`
	Aborted   bool             `json:"aborted,omitempty"`
}

// StreamManager fans events out to the active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
	logger      *slog.Logger
}

// NewStreamManager returns a manager with no subscribers. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[chan Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel of events. The returned function
// unregisters and closes it.
func (sm *StreamManager) Subscribe() (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 16)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Len returns the number of subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Broadcast never blocks: a subscriber with a full buffer misses the event.
func (sm *StreamManager) Broadcast(e Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- e:
		default:
			sm.logger.Warn("sse client buffer full, dropping event", "type", e.Type)
		}
	}
}

// Hooks returns hooks that broadcast state entries and queue drains.
func (sm *StreamManager) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) {
			sm.Broadcast(Event{Type: e.Type, Timestamp: e.Timestamp, State: e.State, Peer: e.Peer})
		},
		OnDrained: func(e *domain.DrainEvent) {
			sm.Broadcast(Event{
				Type:      e.Type,
				Timestamp: e.Timestamp,
				DrainID:   e.DrainID,
				Executed:  e.Executed,
				Failed:    e.Failed,
				Aborted:   e.Aborted,
			})
		},
	}
}

func (e Event) marshal() []byte {
	b, _ := json.Marshal(e)
	return b
}
