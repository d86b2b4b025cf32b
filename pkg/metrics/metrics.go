package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// External API metrics
	ExternalAPIRequestsTotal *prometheus.CounterVec
	ExternalAPIErrorsTotal   *prometheus.CounterVec
	ExternalAPIDuration      *prometheus.HistogramVec

	// Key store metrics
	KeyStoreOperationsTotal *prometheus.CounterVec
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homescope",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "homescope",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
		ExternalAPIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homescope",
				Subsystem: "external_api",
				Name:      "requests_total",
				Help:      "Total number of external API requests",
			},
			[]string{"service"},
		),
		ExternalAPIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homescope",
				Subsystem: "external_api",
				Name:      "errors_total",
				Help:      "Total number of external API errors",
			},
			[]string{"service"},
		),
		ExternalAPIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "homescope",
				Subsystem: "external_api",
				Name:      "duration_seconds",
				Help:      "Duration of external API requests",
				Buckets:   defaultBuckets,
			},
			[]string{"service"},
		),
		KeyStoreOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "homescope",
				Subsystem: "keystore",
				Name:      "operations_total",
				Help:      "Total number of API key store operations",
			},
			[]string{"operation", "result"},
		),
	}

	globalMetrics = m
	return m
}

// GetMetrics returns the global metrics instance, creating it if needed
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return NewMetrics(nil)
	}
	return globalMetrics
}

// ObserveHTTPRequest records a completed HTTP request
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveExternalAPIRequest records a completed external API call
func (m *Metrics) ObserveExternalAPIRequest(service string, duration time.Duration, err error) {
	m.ExternalAPIRequestsTotal.WithLabelValues(service).Inc()
	m.ExternalAPIDuration.WithLabelValues(service).Observe(duration.Seconds())
	if err != nil {
		m.ExternalAPIErrorsTotal.WithLabelValues(service).Inc()
	}
}
