package http

import (
	"log/slog"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/pkg/registry"
)

// QueueSubmitter builds commands from a registry and submits them to the
// host queue on the loop goroutine.
type QueueSubmitter struct {
	Host     *ludus.Host
	Registry *registry.Registry
	Logger   *slog.Logger
}

// Submit builds name synchronously so argument errors reach the caller, then
// posts the submission to the loop.
func (q *QueueSubmitter) Submit(name string, args map[string]any) error {
	cmd, err := q.Registry.Build(name, args)
	if err != nil {
		return err
	}
	q.Host.Post(func() {
		if err := q.Host.Queue().Submit(cmd, nil); err != nil && q.Logger != nil {
			q.Logger.Warn("submit command", "command", name, "err", err)
		}
	})
	return nil
}
