package observability

import (
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ludus"

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	stateEnters     *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	drains          *prometheus.CounterVec
	pending         prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stateEnters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_enters_total",
			Help:      "Number of times each state was entered.",
		}, []string{"state"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State transitions by source and target.",
		}, []string{"from", "to"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Finished commands by name and outcome.",
		}, []string{"command", "outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Tick time spent executing each command.",
			Buckets:   []float64{0.016, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"command"}),
		drains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_drains_total",
			Help:      "Completed command queue drains by outcome.",
		}, []string{"outcome"}),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_pending_commands",
			Help:      "Commands waiting in the queue at the last command event.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.stateEnters, m.transitions, m.commands, m.commandDuration, m.drains, m.pending,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns hooks that record every event.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnStateEnter: func(e *domain.StateEvent) {
			m.stateEnters.WithLabelValues(e.State).Inc()
			if e.Peer != "" {
				m.transitions.WithLabelValues(e.Peer, e.State).Inc()
			}
		},
		OnCommandStart: func(e *domain.CommandEvent) {
			m.pending.Set(float64(e.Pending))
		},
		OnCommandFinish: func(e *domain.CommandEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.commands.WithLabelValues(e.Command, outcome).Inc()
			m.commandDuration.WithLabelValues(e.Command).Observe(e.Duration.Seconds())
			m.pending.Set(float64(e.Pending))
		},
		OnDrained: func(e *domain.DrainEvent) {
			outcome := "ok"
			switch {
			case e.Aborted:
				outcome = "aborted"
			case e.Failed > 0:
				outcome = "partial"
			}
			m.drains.WithLabelValues(outcome).Inc()
		},
	}
}
