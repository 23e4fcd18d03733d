package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventStateEnter    EventType = "state_enter"
	EventStateExit     EventType = "state_exit"
	EventCommandStart  EventType = "command_start"
	EventCommandFinish EventType = "command_finish"
	EventDrained       EventType = "drained"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent represents entry into or exit from a state.
type StateEvent struct {
	EventBase
	State string `json:"state"`
	// Peer is the state on the other side of the transition (empty for the first entry).
	Peer string `json:"peer,omitempty"`
}

// CommandEvent represents the start or the end of a command execution.
type CommandEvent struct {
	EventBase
	DrainID  string        `json:"drain_id"`
	Command  string        `json:"command"`
	Index    int           `json:"index"`
	Pending  int           `json:"pending"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// DrainEvent is emitted once per completed drain, before any observer runs.
type DrainEvent struct {
	EventBase
	DrainID  string `json:"drain_id"`
	Executed int    `json:"executed"`
	Failed   int    `json:"failed"`
	Aborted  bool   `json:"aborted,omitempty"`
}

// Hooks defines callbacks for observability.
// Every field is optional.
type Hooks struct {
	OnStateEnter    func(*StateEvent)
	OnStateExit     func(*StateEvent)
	OnCommandStart  func(*CommandEvent)
	OnCommandFinish func(*CommandEvent)
	OnDrained       func(*DrainEvent)
}

// Merge returns hooks that call h first, then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStateEnter:    chain(h.OnStateEnter, other.OnStateEnter),
		OnStateExit:     chain(h.OnStateExit, other.OnStateExit),
		OnCommandStart:  chain(h.OnCommandStart, other.OnCommandStart),
		OnCommandFinish: chain(h.OnCommandFinish, other.OnCommandFinish),
		OnDrained:       chain(h.OnDrained, other.OnDrained),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
