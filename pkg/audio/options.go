package audio

import (
	"log/slog"

	"github.com/gopxl/beep"
)

// Option defines a functional option for configuring the Master.
type Option func(*Master)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Master) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithPrefs sets the store used for saved volumes (default in-memory).
func WithPrefs(p Prefs) Option {
	return func(m *Master) {
		if p != nil {
			m.prefs = p
		}
	}
}

// WithSampleRate sets the output sample rate (default 48 kHz).
func WithSampleRate(sr beep.SampleRate) Option {
	return func(m *Master) {
		if sr > 0 {
			m.sampleRate = sr
		}
	}
}
