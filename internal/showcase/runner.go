package showcase

import (
	"errors"
	"log/slog"

	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/domain"
)

// CommandRunner submits commands to a queue and logs every completed drain.
type CommandRunner struct {
	queue       *command.Queue
	logger      *slog.Logger
	unsubscribe func()
}

// NewCommandRunner subscribes to queue drains until Close.
func NewCommandRunner(queue *command.Queue, logger *slog.Logger) *CommandRunner {
	r := &CommandRunner{queue: queue, logger: logger}
	r.unsubscribe = queue.Subscribe(func(res command.Result) {
		logger.Info("all commands executed",
			"drain_id", res.DrainID,
			"executed", res.Executed,
			"failed", len(res.Failed),
		)
	})
	return r
}

// ExecuteAsync enqueues cmd and starts a drain. When a drain is already
// running, cmd joins it and callback is dropped.
func (r *CommandRunner) ExecuteAsync(cmd command.Command, callback func(command.Result)) error {
	if err := r.queue.Enqueue(cmd); err != nil {
		return err
	}
	err := r.queue.Run(callback)
	if errors.Is(err, domain.ErrQueueBusy) {
		r.logger.Debug("drain already running", "command", command.Name(cmd))
		return nil
	}
	return err
}

// EnqueueAndExecute enqueues cmd and starts a drain only when none is
// running; callback then runs when the current drain completes.
func (r *CommandRunner) EnqueueAndExecute(cmd command.Command, callback func(command.Result)) error {
	return r.queue.Submit(cmd, callback)
}

// Close stops logging drains.
func (r *CommandRunner) Close() {
	r.unsubscribe()
}
