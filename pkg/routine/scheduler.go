package routine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/ludus/internal/logging"
)

// Handle identifies a routine started on a Scheduler.
type Handle struct {
	r       Routine
	stopped bool
	done    bool
}

// Stop prevents any further step of the routine.
func (h *Handle) Stop() {
	if h != nil {
		h.stopped = true
	}
}

// Done reports whether the routine finished or was stopped.
func (h *Handle) Done() bool {
	return h == nil || h.done || h.stopped
}

// Scheduler steps any number of independent routines once per tick, in start order.
// It is not safe for concurrent use; drive it from a single loop.
type Scheduler struct {
	active []*Handle
	logger *slog.Logger
}

// NewScheduler creates an empty scheduler. A nil logger discards output.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scheduler{logger: logger}
}

// Start schedules r. Its first step happens on the next Tick.
func (s *Scheduler) Start(r Routine) *Handle {
	h := &Handle{r: r}
	if r == nil {
		h.done = true
		return h
	}
	s.active = append(s.active, h)
	return h
}

// Tick steps every running routine once. Routines started during the tick
// wait for the next one. Errors and panics are logged and end the routine.
func (s *Scheduler) Tick(dt time.Duration) {
	snapshot := slices.Clone(s.active)
	for _, h := range snapshot {
		if h.stopped || h.done {
			continue
		}
		status, err := stepRecover(h.r, dt)
		if err != nil {
			s.logger.Warn("routine failed", "err", err)
		}
		if err != nil || status == Done {
			h.done = true
		}
	}
	s.active = slices.DeleteFunc(s.active, func(h *Handle) bool {
		return h.done || h.stopped
	})
}

// StopAll stops every scheduled routine.
func (s *Scheduler) StopAll() {
	for _, h := range s.active {
		h.stopped = true
	}
	s.active = nil
}

// Len returns the number of routines still scheduled.
func (s *Scheduler) Len() int {
	return len(s.active)
}

func stepRecover(r Routine, dt time.Duration) (status Status, err error) {
	defer func() {
		if p := recover(); p != nil {
			status, err = Done, fmt.Errorf("routine panicked: %v", p)
		}
	}()
	return r.Step(dt)
}
