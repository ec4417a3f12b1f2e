package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Playground API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playground",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "playground",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Outcome is "success" or the failure kind reported in the envelope.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playground",
			Subsystem: "api",
			Name:      "operations_total",
			Help:      "Playground operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	CompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "playground",
			Subsystem: "api",
			Name:      "completions_total",
			Help:      "Mock completions served per model",
		},
		[]string{"model"},
	)

	TemplatesLive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "playground",
			Subsystem: "api",
			Name:      "templates_live",
			Help:      "Templates currently held in the live set",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordOperation counts a finished playground operation.
func RecordOperation(operation string, success bool, kind string) {
	outcome := "success"
	if !success {
		outcome = strings.TrimSpace(kind)
		if outcome == "" {
			outcome = "unknown"
		}
	}
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordCompletion counts a successful completion for model.
func RecordCompletion(model string) {
	if model == "" {
		model = "unknown"
	}
	CompletionsTotal.WithLabelValues(model).Inc()
}

// SetTemplatesLive sets the live template gauge
func SetTemplatesLive(n int) {
	TemplatesLive.Set(float64(n))
}
