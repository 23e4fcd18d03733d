package fsm

import (
	"log/slog"

	"github.com/aretw0/ludus/pkg/domain"
)

type config struct {
	logger *slog.Logger
	hooks  domain.Hooks
}

// Option defines a functional option for configuring a Machine.
type Option func(*config)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}
