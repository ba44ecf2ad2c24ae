package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the serve surface.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   prometheus.Counter
	errorsTotal     prometheus.Counter
	proposalsTotal  prometheus.Counter
	clipsCutTotal   prometheus.Counter
	clipsFailed     prometheus.Counter
	requestDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookcut_requests_total",
			Help: "Total number of HTTP requests received",
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookcut_errors_total",
			Help: "Total number of HTTP responses with error status (4xx or 5xx)",
		}),
		proposalsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookcut_proposals_total",
			Help: "Total number of successful propose actions",
		}),
		clipsCutTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookcut_clips_cut_total",
			Help: "Total number of clips successfully extracted",
		}),
		clipsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hookcut_clips_failed_total",
			Help: "Total number of clip extractions that failed",
		}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hookcut_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.errorsTotal,
		m.proposalsTotal,
		m.clipsCutTotal,
		m.clipsFailed,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) IncProposals() { m.proposalsTotal.Inc() }

func (m *Metrics) AddClipsCut(n int) { m.clipsCutTotal.Add(float64(n)) }

func (m *Metrics) AddClipsFailed(n int) { m.clipsFailed.Add(float64(n)) }

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RequestMiddleware records request count, error count and latency.
func (m *Metrics) RequestMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := prometheus.NewTimer(m.requestDuration)
			wrap := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrap, r)
			timer.ObserveDuration()

			m.requestsTotal.Inc()
			if wrap.status >= 400 {
				m.errorsTotal.Inc()
			}
		})
	}
}
