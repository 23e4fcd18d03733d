/*
Package routine models cooperative suspension as explicit steps.

A Routine is advanced by repeated calls to Step, one per host tick. Each call
either reports Running (the routine suspended and wants to be resumed on a
later tick) or Done (it finished, possibly with an error). Routines are lazy,
finite and non-restartable: stepping a finished routine keeps returning Done.

The combinators in this package replace language-level generators:

	r := routine.Sequence(
		routine.Wait(time.Second),
		routine.Do(func() { value++ }),
		routine.Wait(time.Second),
		routine.Do(func() { value++ }),
	)
*/
package routine

import (
	"fmt"
	"time"
)

// Status reports whether a routine finished.
type Status int

const (
	// Running means the routine suspended and must be stepped again.
	Running Status = iota
	// Done means the routine finished.
	Done
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Routine is a resumable unit of work driven by ticks.
type Routine interface {
	// Step advances the routine by one tick of dt.
	// A non-nil error always comes with Done.
	Step(dt time.Duration) (Status, error)
}

// Func adapts a plain function to the Routine interface.
type Func func(dt time.Duration) (Status, error)

// Step calls f.
func (f Func) Step(dt time.Duration) (Status, error) {
	return f(dt)
}

type action struct {
	fn   func() error
	done bool
}

// Do runs fn once and finishes in the same step.
func Do(fn func()) Routine {
	return &action{fn: func() error {
		fn()
		return nil
	}}
}

// DoErr runs fn once and finishes in the same step, reporting its error.
func DoErr(fn func() error) Routine {
	return &action{fn: fn}
}

func (a *action) Step(time.Duration) (Status, error) {
	if a.done {
		return Done, nil
	}
	a.done = true
	return Done, a.fn()
}

type wait struct {
	duration time.Duration
	elapsed  time.Duration
	started  bool
}

// Wait suspends for d of tick time.
// The tick that starts the wait does not count toward it, so Wait always
// suspends at least once, even for d <= 0.
func Wait(d time.Duration) Routine {
	return &wait{duration: d}
}

func (w *wait) Step(dt time.Duration) (Status, error) {
	if !w.started {
		w.started = true
		return Running, nil
	}
	w.elapsed += dt
	if w.elapsed >= w.duration {
		return Done, nil
	}
	return Running, nil
}

// Yield suspends exactly once.
func Yield() Routine {
	return Wait(0)
}

type until struct {
	pred func() bool
	done bool
}

// Until suspends until pred reports true. pred is checked on every step,
// including the first.
func Until(pred func() bool) Routine {
	return &until{pred: pred}
}

func (u *until) Step(time.Duration) (Status, error) {
	if u.done || u.pred() {
		u.done = true
		return Done, nil
	}
	return Running, nil
}

type tween struct {
	duration time.Duration
	elapsed  time.Duration
	apply    func(t float64)
	done     bool
}

// Tween calls apply with the normalised progress in [0, 1] on every step
// until d of tick time has elapsed. The final call always receives 1.
func Tween(d time.Duration, apply func(t float64)) Routine {
	return &tween{duration: d, apply: apply}
}

func (tw *tween) Step(dt time.Duration) (Status, error) {
	if tw.done {
		return Done, nil
	}
	tw.elapsed += dt
	if tw.duration <= 0 || tw.elapsed >= tw.duration {
		tw.done = true
		tw.apply(1)
		return Done, nil
	}
	tw.apply(float64(tw.elapsed) / float64(tw.duration))
	return Running, nil
}

type sequence struct {
	steps []Routine
	index int
}

// Sequence runs routines one after another. When a child finishes, the next
// child starts within the same step, so only real suspension points cost a
// tick. The first error stops the sequence.
func Sequence(rs ...Routine) Routine {
	return &sequence{steps: rs}
}

func (s *sequence) Step(dt time.Duration) (Status, error) {
	for s.index < len(s.steps) {
		current := s.steps[s.index]
		if current == nil {
			s.index++
			continue
		}
		status, err := current.Step(dt)
		if err != nil {
			s.index = len(s.steps)
			return Done, err
		}
		if status == Running {
			return Running, nil
		}
		s.index++
	}
	return Done, nil
}

// Lazy defers building a routine until its first step.
func Lazy(build func() Routine) Routine {
	var r Routine
	return Func(func(dt time.Duration) (Status, error) {
		if r == nil {
			r = build()
			if r == nil {
				return Done, nil
			}
		}
		return r.Step(dt)
	})
}

// RunToCompletion steps r with a fixed dt until it finishes or limit steps
// were taken. It returns the number of steps used. Reaching the limit is an
// error. A limit <= 0 means no limit.
func RunToCompletion(r Routine, dt time.Duration, limit int) (int, error) {
	for steps := 1; limit <= 0 || steps <= limit; steps++ {
		status, err := r.Step(dt)
		if err != nil {
			return steps, err
		}
		if status == Done {
			return steps, nil
		}
	}
	return limit, fmt.Errorf("routine still running after %d steps", limit)
}
