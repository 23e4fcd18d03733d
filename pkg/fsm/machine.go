package fsm

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/domain"
)

// Machine holds the single active state of a context T.
// It is not safe for concurrent use; drive it from a single loop.
type Machine[T any] struct {
	ctx           T
	current       State[T]
	previous      State[T]
	transitioning bool

	logger *slog.Logger
	hooks  domain.Hooks
}

// NewMachine creates a machine with no current state for ctx.
// A nil ctx is rejected with domain.ErrNilContext.
func NewMachine[T any](ctx T, opts ...Option) (*Machine[T], error) {
	if isNil(ctx) {
		return nil, fmt.Errorf("new state machine: %w", domain.ErrNilContext)
	}
	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Machine[T]{
		ctx:    ctx,
		logger: cfg.logger,
		hooks:  cfg.hooks,
	}, nil
}

// TransitionTo builds a zero S, transitions to it and returns it.
// The new state's Enter runs before the caller gets the instance back, so
// any fields patched afterwards are seen from the next Tick on.
func TransitionTo[S any, PS interface {
	*S
	State[T]
}, T any](m *Machine[T]) (PS, error) {
	next := PS(new(S))
	if err := m.Transition(next); err != nil {
		return nil, err
	}
	return next, nil
}

// Transition exits the current state (if any), makes next current and enters it.
// A nil next is rejected with domain.ErrNilState and the machine is left unchanged.
// Calling Transition from Enter, Exit or a state hook returns
// domain.ErrTransitionInProgress; transition from Tick instead.
func (m *Machine[T]) Transition(next State[T]) error {
	if isNil(next) {
		return fmt.Errorf("transition from %q: %w", StateName(m.current), domain.ErrNilState)
	}
	if m.transitioning {
		return fmt.Errorf("transition to %q: %w", StateName(next), domain.ErrTransitionInProgress)
	}
	m.transitioning = true
	defer func() { m.transitioning = false }()

	from := m.current
	fromName := StateName(from)
	toName := StateName(next)

	if from != nil {
		from.Exit()
		if m.hooks.OnStateExit != nil {
			m.hooks.OnStateExit(&domain.StateEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateExit},
				State:     fromName,
				Peer:      toName,
			})
		}
	}

	m.previous = from
	m.current = next

	m.logger.Debug("state transition", "from", fromName, "to", toName)

	next.Enter(m.ctx)
	if m.hooks.OnStateEnter != nil {
		m.hooks.OnStateEnter(&domain.StateEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStateEnter},
			State:     toName,
			Peer:      fromName,
		})
	}
	return nil
}

// Tick forwards one tick to the current state. Without a state it does nothing.
func (m *Machine[T]) Tick(dt time.Duration) {
	if m.current == nil {
		return
	}
	m.current.Tick(dt)
}

// Current returns the active state, or nil before the first transition.
func (m *Machine[T]) Current() State[T] {
	return m.current
}

// Previous returns the state exited by the last transition, or nil.
func (m *Machine[T]) Previous() State[T] {
	return m.previous
}

// Context returns the owning context.
func (m *Machine[T]) Context() T {
	return m.ctx
}

// CurrentName returns the display name of the active state, or "" when there is none.
func (m *Machine[T]) CurrentName() string {
	return StateName(m.current)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
