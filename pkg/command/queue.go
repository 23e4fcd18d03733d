package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/aretw0/ludus/pkg/routine"
	"github.com/google/uuid"
)

type observer struct {
	fn     func(Result)
	active bool
}

// Queue executes commands one at a time, in enqueue order, as the host ticks it.
// It is not safe for concurrent use; drive it from a single loop.
type Queue struct {
	pending   []Command
	observers []*observer

	capacity int
	policy   Policy
	delay    time.Duration
	logger   *slog.Logger
	hooks    domain.Hooks

	// Drain state, reset by complete.
	draining bool
	drainID  string
	onEmpty  []func(Result)
	current  Command
	task     routine.Routine
	index    int
	elapsed  time.Duration
	settling bool
	waited   time.Duration
	result   Result
}

// NewQueue creates an empty, unbounded queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends cmd to the tail of the pending list.
// Commands enqueued during a drain are executed by that drain.
func (q *Queue) Enqueue(cmd Command) error {
	if cmd == nil {
		return domain.ErrNilCommand
	}
	if q.capacity > 0 && len(q.pending) >= q.capacity {
		return fmt.Errorf("enqueue %s: %w", Name(cmd), domain.ErrQueueFull)
	}
	q.pending = append(q.pending, cmd)
	return nil
}

// Run starts draining the queue. The drain advances on subsequent Tick calls.
// onEmpty, if not nil, is called once after every persistent observer when
// the drain completes. Calling Run while a drain is in progress returns
// domain.ErrQueueBusy and leaves the running drain untouched.
func (q *Queue) Run(onEmpty func(Result)) error {
	if q.draining {
		return domain.ErrQueueBusy
	}
	q.draining = true
	q.drainID = uuid.NewString()
	q.result = Result{DrainID: q.drainID}
	if onEmpty != nil {
		q.onEmpty = append(q.onEmpty, onEmpty)
	}
	q.logger.Debug("command queue drain started", "drain_id", q.drainID, "pending", len(q.pending))
	return nil
}

// Submit enqueues cmd and starts a drain unless one is already running.
// When a drain is running, onEmpty joins that drain's completion callbacks.
func (q *Queue) Submit(cmd Command, onEmpty func(Result)) error {
	if err := q.Enqueue(cmd); err != nil {
		return err
	}
	if q.draining {
		if onEmpty != nil {
			q.onEmpty = append(q.onEmpty, onEmpty)
		}
		return nil
	}
	return q.Run(onEmpty)
}

// Subscribe registers a persistent observer of completed drains.
// The returned function removes it; calling it during a notification is safe.
// A nil fn is ignored.
func (q *Queue) Subscribe(fn func(Result)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	o := &observer{fn: fn, active: true}
	q.observers = append(q.observers, o)
	return func() {
		if !o.active {
			return
		}
		o.active = false
		for i, cur := range q.observers {
			if cur == o {
				q.observers = append(q.observers[:i:i], q.observers[i+1:]...)
				break
			}
		}
	}
}

// Len returns the number of pending commands, excluding the one executing.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Draining reports whether a drain is in progress.
func (q *Queue) Draining() bool {
	return q.draining
}

// Current returns the command being executed, or nil.
func (q *Queue) Current() Command {
	return q.current
}

// Tick advances the active drain by one host tick.
func (q *Queue) Tick(dt time.Duration) {
	if !q.draining {
		return
	}

	if q.task != nil {
		q.step(dt)
		return
	}

	if len(q.pending) > 0 {
		q.settling = false
		q.begin()
		q.step(dt)
		return
	}

	if !q.settling {
		q.settling = true
		q.waited = 0
	} else {
		q.waited += dt
	}
	if q.waited >= q.delay {
		q.complete()
	}
}

// RunAll starts a drain and ticks it with a fixed dt until it completes or
// ctx is done.
func (q *Queue) RunAll(ctx context.Context, dt time.Duration) (Result, error) {
	var (
		res  Result
		done bool
	)
	if err := q.Run(func(r Result) {
		res = r
		done = true
	}); err != nil {
		return Result{}, err
	}
	for !done {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		q.Tick(dt)
	}
	return res, nil
}

// begin dequeues the head. The command stops counting as pending here.
func (q *Queue) begin() {
	cmd := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	if len(q.pending) == 0 {
		q.pending = nil
	}

	q.current = cmd
	q.elapsed = 0

	name := Name(cmd)
	q.logger.Debug("command started",
		"drain_id", q.drainID,
		"command", name,
		"index", q.index,
		"pending", len(q.pending),
	)
	if q.hooks.OnCommandStart != nil {
		q.hooks.OnCommandStart(&domain.CommandEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandStart},
			DrainID:   q.drainID,
			Command:   name,
			Index:     q.index,
			Pending:   len(q.pending),
		})
	}

	task, err := safeExecute(cmd)
	if err != nil {
		q.finish(err)
		return
	}
	if task == nil {
		task = routine.Func(func(time.Duration) (routine.Status, error) {
			return routine.Done, nil
		})
	}
	q.task = task
}

func (q *Queue) step(dt time.Duration) {
	if q.task == nil {
		return
	}
	q.elapsed += dt
	status, err := safeStep(q.task, dt)
	if err != nil || status == routine.Done {
		q.finish(err)
	}
}

func (q *Queue) finish(err error) {
	cmd := q.current
	name := Name(cmd)
	index := q.index

	q.result.Executed++
	q.index++
	q.task = nil
	q.current = nil

	if err != nil {
		cmdErr := &CommandError{Index: index, Command: name, Err: err}
		q.result.Failed = append(q.result.Failed, cmdErr)
		q.logger.Warn("command failed",
			"drain_id", q.drainID,
			"command", name,
			"index", index,
			"policy", q.policy.String(),
			"err", err,
		)
	} else {
		q.logger.Debug("command finished",
			"drain_id", q.drainID,
			"command", name,
			"index", index,
			"elapsed", q.elapsed,
		)
	}

	if q.hooks.OnCommandFinish != nil {
		q.hooks.OnCommandFinish(&domain.CommandEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandFinish},
			DrainID:   q.drainID,
			Command:   name,
			Index:     index,
			Pending:   len(q.pending),
			Duration:  q.elapsed,
			Err:       err,
		})
	}

	if f, ok := cmd.(Finisher); ok {
		f.Finish(err)
	}

	if err != nil && q.policy == AbortOnError {
		q.result.Aborted = true
		q.complete()
	}
}

func (q *Queue) complete() {
	res := q.result
	callbacks := q.onEmpty

	q.draining = false
	q.drainID = ""
	q.onEmpty = nil
	q.current = nil
	q.task = nil
	q.index = 0
	q.settling = false
	q.waited = 0
	q.result = Result{}

	q.logger.Info("command queue drained",
		"drain_id", res.DrainID,
		"executed", res.Executed,
		"failed", len(res.Failed),
		"aborted", res.Aborted,
		"pending", len(q.pending),
	)
	if q.hooks.OnDrained != nil {
		q.hooks.OnDrained(&domain.DrainEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDrained},
			DrainID:   res.DrainID,
			Executed:  res.Executed,
			Failed:    len(res.Failed),
			Aborted:   res.Aborted,
		})
	}

	snapshot := make([]*observer, len(q.observers))
	copy(snapshot, q.observers)
	for _, o := range snapshot {
		if o.active {
			o.fn(res)
		}
	}
	for _, cb := range callbacks {
		cb(res)
	}
}

func safeExecute(cmd Command) (task routine.Routine, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command panicked: %v", r)
		}
	}()
	return cmd.Execute(), nil
}

func safeStep(task routine.Routine, dt time.Duration) (status routine.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			status, err = routine.Done, fmt.Errorf("command panicked: %v", r)
		}
	}()
	return task.Step(dt)
}
