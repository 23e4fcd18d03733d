/*
Package observability turns lifecycle hooks into metrics and logs.

Metrics exposes Prometheus collectors fed by domain.Hooks; LogHooks writes
the same events as structured log records. Both can be merged and passed to
any component that accepts WithHooks:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
*/
package observability
