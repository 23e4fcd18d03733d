package command

import (
	"fmt"
	"strings"

	"github.com/aretw0/ludus/pkg/routine"
)

// Command is a schedulable unit of logic.
// Execute is called once, when the command reaches the head of a drain.
type Command interface {
	Execute() routine.Routine
}

// Named is implemented by commands that expose a display name for logs and metrics.
type Named interface {
	Name() string
}

// Finisher is implemented by commands that want to know when they leave the
// queue. Finish is called once per execution, after the command finished or
// failed, with the failure cause or nil.
type Finisher interface {
	Finish(err error)
}

// Name returns the display name of c.
func Name(c Command) string {
	if c == nil {
		return "<nil>"
	}
	if n, ok := c.(Named); ok {
		return n.Name()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", c), "*")
}

type funcCommand struct {
	name string
	fn   func() routine.Routine
}

// Func adapts a routine constructor to the Command interface.
func Func(name string, fn func() routine.Routine) Command {
	return &funcCommand{name: name, fn: fn}
}

func (f *funcCommand) Execute() routine.Routine {
	if f.fn == nil {
		return nil
	}
	return f.fn()
}

func (f *funcCommand) Name() string {
	return f.name
}
