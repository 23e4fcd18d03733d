package command

import (
	"log/slog"
	"time"

	"github.com/aretw0/ludus/pkg/domain"
)

// Option defines a functional option for configuring the Queue.
type Option func(*Queue)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(q *Queue) {
		q.hooks = hooks
	}
}

// WithPolicy sets the failure policy (default ContinueOnError).
func WithPolicy(p Policy) Option {
	return func(q *Queue) {
		q.policy = p
	}
}

// WithCompletionDelay waits d of tick time after the queue empties before
// notifying observers.
func WithCompletionDelay(d time.Duration) Option {
	return func(q *Queue) {
		q.delay = d
	}
}

// WithCapacity bounds the number of pending commands. n <= 0 means unbounded.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		q.capacity = n
	}
}
