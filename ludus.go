package ludus

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/bus"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/aretw0/ludus/pkg/fsm"
	"github.com/aretw0/ludus/pkg/loop"
	"github.com/aretw0/ludus/pkg/pool"
	"github.com/aretw0/ludus/pkg/routine"
)

// Host is the high-level entry point of the library.
// It owns the shared services of a game (command queue, event bus, pools,
// background routines) and the loop that ticks them.
type Host struct {
	logger     *slog.Logger
	hooks      domain.Hooks
	queueOpts  []command.Option
	driverOpts []loop.Option
	busOpts    []bus.Option
	queue      *command.Queue
	bus        *bus.Registry
	pools      *pool.Registry
	routines   *routine.Scheduler
	driver     *loop.Driver
	tickers    []loop.Ticker
}

// Option defines a functional option for configuring the Host.
type Option func(*Host)

// WithLogger sets a custom structured logger for the host and everything it builds.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithHooks registers observability hooks on the queue and on machines built
// with NewMachine.
func WithHooks(hooks domain.Hooks) Option {
	return func(h *Host) {
		h.hooks = h.hooks.Merge(hooks)
	}
}

// WithQueueOptions forwards options to the command queue.
func WithQueueOptions(opts ...command.Option) Option {
	return func(h *Host) {
		h.queueOpts = append(h.queueOpts, opts...)
	}
}

// WithDriverOptions forwards options to the loop driver.
func WithDriverOptions(opts ...loop.Option) Option {
	return func(h *Host) {
		h.driverOpts = append(h.driverOpts, opts...)
	}
}

// WithBusOptions forwards options to the event bus registry.
func WithBusOptions(opts ...bus.Option) Option {
	return func(h *Host) {
		h.busOpts = append(h.busOpts, opts...)
	}
}

// New creates a host. Nothing runs until Run or Tick is called.
func New(opts ...Option) *Host {
	h := &Host{}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = logging.NewNop()
	}

	h.queue = command.NewQueue(append([]command.Option{
		command.WithLogger(h.logger),
		command.WithHooks(h.hooks),
	}, h.queueOpts...)...)
	h.bus = bus.NewRegistry(append([]bus.Option{bus.WithLogger(h.logger)}, h.busOpts...)...)
	h.pools = pool.NewRegistry()
	h.routines = routine.NewScheduler(h.logger)
	h.driver = loop.NewDriver(append([]loop.Option{loop.WithLogger(h.logger)}, h.driverOpts...)...)
	h.driver.Add(h)
	return h
}

// Logger returns the host logger.
func (h *Host) Logger() *slog.Logger { return h.logger }

// Hooks returns the hooks the host was configured with.
func (h *Host) Hooks() domain.Hooks { return h.hooks }

// Queue returns the command queue.
func (h *Host) Queue() *command.Queue { return h.queue }

// Bus returns the event bus registry.
func (h *Host) Bus() *bus.Registry { return h.bus }

// Pools returns the object pool registry.
func (h *Host) Pools() *pool.Registry { return h.pools }

// Routines returns the scheduler of background routines.
func (h *Host) Routines() *routine.Scheduler { return h.routines }

// Driver returns the loop driver.
func (h *Host) Driver() *loop.Driver { return h.driver }

// Attach adds t to the host tick, after the queue and the routines.
// Attached tickers run in attach order.
func (h *Host) Attach(t loop.Ticker) {
	h.tickers = append(h.tickers, t)
}

// Start schedules r as a background routine, like a fade or a timer.
func (h *Host) Start(r routine.Routine) *routine.Handle {
	return h.routines.Start(r)
}

// Post runs fn on the loop before the next tick. Safe from any goroutine.
func (h *Host) Post(fn func()) {
	h.driver.Post(fn)
}

// Tick advances the queue, the routines and every attached ticker by dt.
func (h *Host) Tick(dt time.Duration) {
	h.queue.Tick(dt)
	h.routines.Tick(dt)
	for _, t := range h.tickers {
		t.Tick(dt)
	}
}

// Step runs posted work and ticks once, without the real-time loop.
func (h *Host) Step(dt time.Duration) {
	h.driver.Step(dt)
}

// Run ticks the host at the driver rate until ctx is done or Stop is called.
func (h *Host) Run(ctx context.Context) error {
	return h.driver.Run(ctx)
}

// Stop ends Run.
func (h *Host) Stop() {
	h.driver.Stop()
}

// NewMachine builds a state machine for ctx that logs and reports through
// the host, and attaches it to the host tick.
func NewMachine[T any](h *Host, ctx T) (*fsm.Machine[T], error) {
	m, err := fsm.NewMachine(ctx, fsm.WithLogger(h.logger), fsm.WithHooks(h.hooks))
	if err != nil {
		return nil, err
	}
	h.Attach(m)
	return m, nil
}
