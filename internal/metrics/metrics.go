// Package metrics holds the Prometheus collectors for advisor sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edition_advisor"

// Metrics is the set of advisor collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	resolved       *prometheus.CounterVec
	renderFailures prometheus.Counter
	sessions       prometheus.Gauge
	frameSeconds   prometheus.Histogram
}

// New registers the collectors on a fresh registry, alongside the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		// Labels: action (answer, jump, back, reset)
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Traversal transitions by action",
		}, []string{"action"}),
		// Labels: edition
		resolved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolved_total",
			Help:      "Traversals that reached a recommendation, by edition",
		}, []string{"edition"}),
		renderFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Frames that failed to build",
		}),
		sessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Open live advisor sessions",
		}),
		frameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time to build and encode one frame",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Transition counts one traversal action.
func (m *Metrics) Transition(action string) { m.transitions.WithLabelValues(action).Inc() }

// Resolved counts a recommendation.
func (m *Metrics) Resolved(edition string) { m.resolved.WithLabelValues(edition).Inc() }

// RenderFailed counts a failed frame.
func (m *Metrics) RenderFailed() { m.renderFailures.Inc() }

// SessionOpened and SessionClosed track live sessions.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// ObserveFrame records how long a frame took since start.
func (m *Metrics) ObserveFrame(start time.Time) {
	m.frameSeconds.Observe(time.Since(start).Seconds())
}
