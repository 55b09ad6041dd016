package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server owns
// its registry so tests can build many.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.HistogramVec // storefront_http_request_duration_seconds
	renders  *prometheus.CounterVec   // storefront_table_renders_total
	actions  *prometheus.CounterVec   // storefront_row_actions_total
}

// NewMetrics registers the collectors on a fresh registry, together with
// the Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "storefront_http_request_duration_seconds",
				Help:    "HTTP request latency partitioned by method, route and status.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_table_renders_total",
				Help: "Table pages rendered, partitioned by list.",
			},
			[]string{"list"},
		),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_row_actions_total",
				Help: "Row actions dispatched, partitioned by list, action and outcome.",
			},
			[]string{"list", "action", "outcome"},
		),
	}
	reg.MustRegister(
		m.requests,
		m.renders,
		m.actions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument observes request durations by matched route.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := wrap(w)

		next.ServeHTTP(ww, r)

		m.requests.WithLabelValues(r.Method, routePattern(r), strconv.Itoa(ww.status)).
			Observe(time.Since(start).Seconds())
	})
}

// TableRendered counts one rendered page of list.
func (m *Metrics) TableRendered(list string) {
	m.renders.WithLabelValues(list).Inc()
}

// ActionDispatched counts one row action by outcome.
func (m *Metrics) ActionDispatched(list, action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.actions.WithLabelValues(list, action, outcome).Inc()
}
