package infrastructure

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics holds the request-level prometheus collectors.
type HTTPMetrics struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ViewsServed     prometheus.Counter
	EmptyViews      prometheus.Counter
	DatasetLoads    prometheus.Counter
	DatasetCacheHit prometheus.Counter
}

// NewHTTPMetrics registers the dashboard collectors on a fresh registry.
func NewHTTPMetrics() *HTTPMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &HTTPMetrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fcdash_http_requests_total",
			Help: "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fcdash_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		ViewsServed: factory.NewCounter(prometheus.CounterOpts{
			Name: "fcdash_dashboard_views_total",
			Help: "Dashboard views rendered successfully.",
		}),
		EmptyViews: factory.NewCounter(prometheus.CounterOpts{
			Name: "fcdash_dashboard_empty_views_total",
			Help: "View requests whose filters matched no rows.",
		}),
		DatasetLoads: factory.NewCounter(prometheus.CounterOpts{
			Name: "fcdash_dataset_loads_total",
			Help: "Unified dataset builds from the source files.",
		}),
		DatasetCacheHit: factory.NewCounter(prometheus.CounterOpts{
			Name: "fcdash_dataset_cache_hits_total",
			Help: "Dataset loads served from the in-process cache.",
		}),
	}
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
