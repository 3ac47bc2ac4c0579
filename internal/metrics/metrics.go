// Package metrics exposes the dashboard's Prometheus counters on a dedicated registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	Registry = prometheus.NewRegistry()

	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dashboard_fetch_total", Help: "Backend fetches issued by the views"},
		[]string{"endpoint", "outcome"},
	)
	RendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dashboard_render_total", Help: "View renders by resulting state"},
		[]string{"view", "state"},
	)
	PollSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dashboard_poll_skipped_total", Help: "Poll ticks skipped because the previous run was still in flight"},
		[]string{"task"},
	)
)

func init() {
	Registry.MustRegister(FetchesTotal, RendersTotal, PollSkippedTotal)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
