package command

import (
	"errors"
	"fmt"
	"strings"
)

// Policy decides what a drain does after a command fails.
type Policy int

const (
	// ContinueOnError records the failure and keeps draining.
	ContinueOnError Policy = iota
	// AbortOnError stops the drain and leaves the remaining commands pending.
	AbortOnError
)

func (p Policy) String() string {
	switch p {
	case ContinueOnError:
		return "continue"
	case AbortOnError:
		return "abort"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration string into a Policy.
// The empty string selects ContinueOnError.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continue":
		return ContinueOnError, nil
	case "abort":
		return AbortOnError, nil
	default:
		return ContinueOnError, fmt.Errorf("invalid queue policy %q (want continue or abort)", s)
	}
}

// CommandError reports a command that failed during a drain.
type CommandError struct {
	// Index is the position of the command within its drain, starting at 0.
	Index   int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %d (%s): %v", e.Index, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Result summarises one drain.
type Result struct {
	DrainID  string
	Executed int
	Failed   []*CommandError
	// Aborted is set when AbortOnError stopped the drain early.
	Aborted bool
}

// Err joins every command failure, or returns nil.
func (r Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failed))
	for i, f := range r.Failed {
		errs[i] = f
	}
	return errors.Join(errs...)
}
