// Package metrics provides Prometheus metrics for the dashboard proxy.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for API latency.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds all Prometheus metric collectors for the proxy.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	UpstreamDuration  *prometheus.HistogramVec
	UpstreamResponses *prometheus.CounterVec
	UpstreamFailures  *prometheus.CounterVec

	prefixes []string
}

// New creates a Metrics instance with a custom registry and all collectors
// registered. prefix and metricsPath become path labels of their own.
func New(prefix, metricsPath string) *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notified_dashboard_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "path_prefix"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notified_dashboard_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "path_prefix"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "notified_dashboard_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "notified_dashboard_upstream_request_duration_seconds",
			Help:    "API gateway call latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method"}),

		UpstreamResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notified_dashboard_upstream_responses_total",
			Help: "Total API gateway responses by method and status code.",
		}, []string{"method", "status_code"}),

		UpstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notified_dashboard_upstream_failures_total",
			Help: "API gateway calls that failed before a response was received.",
		}, []string{"method"}),

		prefixes: []string{prefix, "/healthz", "/proxy/status", metricsPath},
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.UpstreamDuration,
		m.UpstreamResponses,
		m.UpstreamFailures,
	)

	return m
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// NormalizePath returns a bounded path label for Prometheus metrics.
// Everything outside the proxy's own routes is a static asset.
func (m *Metrics) NormalizePath(path string) string {
	for _, prefix := range m.prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return prefix
		}
	}
	return "static"
}
