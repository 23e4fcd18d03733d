package main

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/internal/config"
	"github.com/aretw0/ludus/internal/presentation/graph"
	"github.com/aretw0/ludus/internal/showcase"
	httpadapter "github.com/aretw0/ludus/pkg/adapters/http"
	"github.com/aretw0/ludus/pkg/audio"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/aretw0/ludus/pkg/loop"
	"github.com/aretw0/ludus/pkg/observability"
	"github.com/aretw0/ludus/pkg/registry"
	"github.com/aretw0/ludus/pkg/singleton"
	"github.com/prometheus/client_golang/prometheus"
)

// current is the running demo; only one play session per process.
var current singleton.Instance[*app]

// app is the wiring shared by the play and commands subcommands.
type app struct {
	host     *ludus.Host
	demo     *showcase.Manager
	registry *registry.Registry
	metrics  *prometheus.Registry
	recorder *graph.Recorder
	streams  *httpadapter.StreamManager
	board    *httpadapter.Board
	logger   *slog.Logger
}

func newApp(cfg config.Config, logger *slog.Logger, sound *audio.Master, extra ...domain.Hooks) (*app, error) {
	a := &app{
		registry: registry.NewRegistry(),
		metrics:  prometheus.NewRegistry(),
		recorder: graph.NewRecorder(),
		streams:  httpadapter.NewStreamManager(logger),
		logger:   logger,
	}

	metrics, err := observability.NewMetrics(a.metrics)
	if err != nil {
		return nil, err
	}
	queueOpts, err := cfg.QueueOptions()
	if err != nil {
		return nil, err
	}

	hooks := []domain.Hooks{
		metrics.Hooks(),
		observability.LogHooks(logger),
		a.recorder.Hooks(),
		a.streams.Hooks(),
	}
	opts := []ludus.Option{
		ludus.WithLogger(logger),
		ludus.WithQueueOptions(queueOpts...),
		ludus.WithDriverOptions(loop.WithRate(cfg.TickRate)),
	}
	for _, h := range append(hooks, extra...) {
		opts = append(opts, ludus.WithHooks(h))
	}
	a.host = ludus.New(opts...)

	demoOpts := []showcase.Option{showcase.WithFade(cfg.UI.FadeIn, cfg.UI.FadeOut)}
	if sound != nil {
		demoOpts = append(demoOpts, showcase.WithSound(sound))
	}
	a.demo, err = showcase.NewManager(a.host, demoOpts...)
	if err != nil {
		return nil, err
	}
	a.demo.Commands.Register(a.registry)

	a.board = httpadapter.NewBoard(a.host, a.demo.Machine.CurrentName, func() string {
		return graph.Diagram(a.recorder.Snapshot())
	})
	a.host.Attach(a.board)
	return a, nil
}

// enqueueScript builds every script entry and enqueues it, in order.
func (a *app) enqueueScript(script []config.ScriptEntry) error {
	for _, entry := range script {
		cmd, err := a.registry.Build(entry.Name, entry.Args)
		if err != nil {
			return err
		}
		if err := a.host.Queue().Enqueue(cmd); err != nil {
			return err
		}
	}
	return nil
}

// handler serves the debug API of the running host.
func (a *app) handler() http.Handler {
	return httpadapter.NewHandler(
		httpadapter.WithLogger(a.logger),
		httpadapter.WithInspector(a.board),
		httpadapter.WithSubmitter(&httpadapter.QueueSubmitter{Host: a.host, Registry: a.registry, Logger: a.logger}),
		httpadapter.WithStreams(a.streams),
		httpadapter.WithGatherer(a.metrics),
	)
}

func (a *app) close() {
	a.demo.Close()
}
