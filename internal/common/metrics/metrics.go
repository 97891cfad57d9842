// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardgen_invocations_total",
			Help: "Total number of function invocations by method and status code",
		},
		[]string{"function", "method", "status"},
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "cardgen_invocation_duration_seconds",
			Help: "Duration of function invocations in seconds",
			// generation calls routinely take several seconds
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"function"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cardgen_upstream_request_duration_seconds",
			Help:    "Duration of outbound requests to the text-generation service",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
		[]string{"host", "outcome"},
	)

	CardFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardgen_card_fallbacks_total",
			Help: "Number of generated cards where a field fell back to its default",
		},
		[]string{"field"},
	)

	CardQualityViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cardgen_card_quality_violations_total",
			Help: "Number of generated cards outside the intended length bounds",
		},
		[]string{"field"},
	)
)
