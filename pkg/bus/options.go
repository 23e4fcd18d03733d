package bus

import "log/slog"

// Option defines a functional option for configuring the Registry.
type Option func(*Registry)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
