package fsm

import (
	"fmt"
	"strings"
	"time"
)

// State is a lifecycle bundle bound to one context of type T.
type State[T any] interface {
	// Enter is called with the owning context when the state becomes current.
	Enter(ctx T)
	// Tick is forwarded from the machine once per host tick.
	Tick(dt time.Duration)
	// Exit is called before the next state is entered.
	Exit()
}

// BaseState provides no-op hooks and stores the owning context on Enter.
// States that override Enter should call BaseState.Enter first.
type BaseState[T any] struct {
	Manager T
}

func (b *BaseState[T]) Enter(ctx T) {
	b.Manager = ctx
}

func (b *BaseState[T]) Tick(time.Duration) {}

func (b *BaseState[T]) Exit() {}

// Named is implemented by states that expose a display name.
type Named interface {
	Name() string
}

// StateName returns the display name of s: its Name() if it has one,
// otherwise its unqualified type name.
func StateName(s any) string {
	if s == nil {
		return ""
	}
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	name := strings.TrimPrefix(fmt.Sprintf("%T", s), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
