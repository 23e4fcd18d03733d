package loop

import (
	"log/slog"
	"time"
)

// DefaultRate is the tick rate, in ticks per second, used when none is set.
const DefaultRate = 60

// Option defines a functional option for configuring the Driver.
type Option func(*Driver)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithRate sets the number of ticks per second. Values <= 0 keep the default.
func WithRate(hz int) Option {
	return func(d *Driver) {
		if hz > 0 {
			d.rate = hz
		}
	}
}

// WithSignals makes Run stop on SIGINT or SIGTERM.
func WithSignals(enabled bool) Option {
	return func(d *Driver) {
		d.signals = enabled
	}
}

// WithMaxDelta caps the dt passed to tickers after a stall (default 250ms).
func WithMaxDelta(max time.Duration) Option {
	return func(d *Driver) {
		if max > 0 {
			d.maxDelta = max
		}
	}
}
