// Package metrics exposes Prometheus collectors for live views.
package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "forcetree"

// Metrics holds the collectors for one server. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sessions      prometheus.Gauge
	clicks        *prometheus.CounterVec
	clickDuration prometheus.Histogram
	reloads       prometheus.Counter
	frameNodes    prometheus.Gauge
}

// New registers the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_open",
			Help:      "Number of connected live views.",
		}),
		clicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clicks_total",
			Help:      "Node clicks by outcome and ignore reason.",
		}, []string{"outcome", "reason"}),
		clickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "click_duration_seconds",
			Help:      "Time to handle a node click, pipeline included.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Dataset reloads pushed to live views.",
		}),
		frameNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frame_nodes",
			Help:      "Visible nodes in the most recently rendered frame.",
		}),
	}
	m.registry.MustRegister(
		m.sessions,
		m.clicks,
		m.clickDuration,
		m.reloads,
		m.frameNodes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterRoutes mounts GET /metrics.
func (m *Metrics) RegisterRoutes(r chi.Router) {
	r.Method(http.MethodGet, "/metrics", m.Handler())
}

// SessionOpened counts a newly connected view.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.sessions.Inc()
	}
}

// SessionClosed counts a view that went away.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.sessions.Dec()
	}
}

// ObserveClick counts a handled click. Errors are counted with outcome "error".
func (m *Metrics) ObserveClick(outcome, reason string, d time.Duration) {
	if m == nil {
		return
	}
	m.clicks.WithLabelValues(outcome, reason).Inc()
	m.clickDuration.Observe(d.Seconds())
}

// Reloaded counts a dataset reload pushed to the live views.
func (m *Metrics) Reloaded() {
	if m != nil {
		m.reloads.Inc()
	}
}

// ObserveFrame records the size of a rendered frame.
func (m *Metrics) ObserveFrame(nodes int) {
	if m != nil {
		m.frameNodes.Set(float64(nodes))
	}
}
