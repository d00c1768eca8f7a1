package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Assistant runs dominate the
	// upper end, so the buckets stretch far past typical HTTP serving
	// times.
	latencyBuckets = []float64{
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
		60000, 120000,
	}

	WebhookRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "careline_webhook_requests_total",
			Help: "Total number of webhook requests processed",
		},
		[]string{"method", "status"},
	)

	WebhookRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "careline_webhook_latency_ms",
			Help:    "Webhook request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"status"},
	)
)

// Handler serves the scrape endpoint for this registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
