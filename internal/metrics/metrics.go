// Package metrics exposes the Prometheus collectors for the webhook pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// WebhookRequests counts processed webhook requests by event and status.
	WebhookRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_requests_total", Help: "Processed webhook requests by event and status."},
		[]string{"event", "status"},
	)
	// WebhookRejections counts rejected webhook requests by rejection stage.
	WebhookRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "webhook_rejections_total", Help: "Rejected webhook requests by stage."},
		[]string{"stage"},
	)
	// TaxCalculations counts tax engine invocations by outcome.
	TaxCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tax_calculations_total", Help: "Tax engine invocations by outcome."},
		[]string{"outcome"},
	)
	// HandshakeDuration records token handshake durations in seconds.
	HandshakeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "handshake_duration_seconds", Help: "Token handshake duration in seconds.", Buckets: prometheus.DefBuckets},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(WebhookRequests)
		Registry.MustRegister(WebhookRejections)
		Registry.MustRegister(TaxCalculations)
		Registry.MustRegister(HandshakeDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
