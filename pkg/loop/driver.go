package loop

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/ludus/internal/logging"
	"github.com/aretw0/ludus/pkg/domain"
)

// Ticker is anything advanced by the loop.
type Ticker interface {
	Tick(dt time.Duration)
}

// TickerFunc adapts a function to the Ticker interface.
type TickerFunc func(dt time.Duration)

// Tick calls f.
func (f TickerFunc) Tick(dt time.Duration) { f(dt) }

type entry struct {
	t Ticker
}

// Driver runs the fixed-rate update loop.
type Driver struct {
	rate     int
	maxDelta time.Duration
	signals  bool
	logger   *slog.Logger

	mu      sync.Mutex
	tickers []*entry
	posted  []func()

	running  atomic.Bool
	frames   atomic.Uint64
	stop     chan struct{}
	stopOnce sync.Once
}

// NewDriver creates a stopped driver.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{
		rate:     DefaultRate,
		maxDelta: 250 * time.Millisecond,
		logger:   logging.NewNop(),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add registers t; tickers run in the order they were added.
// The returned function removes it.
func (d *Driver) Add(t Ticker) (remove func()) {
	e := &entry{t: t}
	d.mu.Lock()
	d.tickers = append(d.tickers, e)
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if i := slices.Index(d.tickers, e); i >= 0 {
			d.tickers = slices.Delete(d.tickers, i, i+1)
		}
	}
}

// Post schedules fn to run on the loop goroutine before the next tick.
// It is safe to call from any goroutine.
func (d *Driver) Post(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.posted = append(d.posted, fn)
	d.mu.Unlock()
}

// Step runs posted functions, then ticks every ticker once with dt.
// Run calls it on every frame; tests call it directly.
func (d *Driver) Step(dt time.Duration) {
	d.mu.Lock()
	posted := d.posted
	d.posted = nil
	tickers := slices.Clone(d.tickers)
	d.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
	for _, e := range tickers {
		e.t.Tick(dt)
	}
	d.frames.Add(1)
}

// Frames returns the number of steps taken.
func (d *Driver) Frames() uint64 {
	return d.frames.Load()
}

// Rate returns the configured ticks per second.
func (d *Driver) Rate() int {
	return d.rate
}

// Run ticks until ctx is done or Stop is called, and returns nil in both
// cases. A second concurrent Run returns domain.ErrDriverRunning.
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return domain.ErrDriverRunning
	}
	defer d.running.Store(false)

	if d.signals {
		sm := NewSignalManager(ctx)
		defer sm.Stop()
		ctx = sm.Context()
	}

	interval := time.Second / time.Duration(d.rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("loop started", "rate", d.rate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("loop stopped", "reason", context.Cause(ctx), "frames", d.Frames())
			return nil
		case <-d.stop:
			d.logger.Info("loop stopped", "reason", "stop requested", "frames", d.Frames())
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if dt > d.maxDelta {
				d.logger.Debug("tick delta clamped", "dt", dt, "max", d.maxDelta)
				dt = d.maxDelta
			}
			d.Step(dt)
		}
	}
}

// Stop ends Run. A stopped driver cannot run again.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

// Running reports whether Run is active.
func (d *Driver) Running() bool {
	return d.running.Load()
}
