package observability

import (
	"log/slog"

	"github.com/aretw0/ludus/pkg/domain"
)

// LogHooks returns hooks that log every event at Info level, failures at Warn.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) {
			logger.Info("state_enter", "state", e.State, "from", e.Peer)
		},
		OnStateExit: func(e *domain.StateEvent) {
			logger.Info("state_exit", "state", e.State, "to", e.Peer)
		},
		OnCommandStart: func(e *domain.CommandEvent) {
			logger.Info("command_start",
				"drain_id", e.DrainID,
				"command", e.Command,
				"index", e.Index,
				"pending", e.Pending,
			)
		},
		OnCommandFinish: func(e *domain.CommandEvent) {
			if e.Err != nil {
				logger.Warn("command_finish",
					"drain_id", e.DrainID,
					"command", e.Command,
					"index", e.Index,
					"err", e.Err,
				)
				return
			}
			logger.Info("command_finish",
				"drain_id", e.DrainID,
				"command", e.Command,
				"index", e.Index,
				"duration", e.Duration,
			)
		},
		OnDrained: func(e *domain.DrainEvent) {
			logger.Info("drained",
				"drain_id", e.DrainID,
				"executed", e.Executed,
				"failed", e.Failed,
				"aborted", e.Aborted,
			)
		},
	}
}
