package metrics

import "github.com/prometheus/client_golang/prometheus"

// Perspective annotation Prometheus metrics.
var (
	AnnotationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unbubble",
			Name:      "annotation_requests_total",
			Help:      "Total number of annotation batch requests",
		},
		[]string{"model", "status"},
	)

	AnnotationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "unbubble",
			Name:      "annotation_request_duration_seconds",
			Help:      "Annotation batch request duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"model"},
	)

	AnnotationTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unbubble",
			Name:      "annotation_tokens_total",
			Help:      "Total annotation tokens consumed",
		},
		[]string{"model", "type"}, // type: "input" / "output"
	)

	AnnotationParseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unbubble",
			Name:      "annotation_parse_failures_total",
			Help:      "Annotation batches whose model output could not be parsed",
		},
		[]string{"model"},
	)
)

var annotationMetricsRegistered bool

// RegisterAnnotationMetrics registers Prometheus annotation metrics. Must be called once from main.
func RegisterAnnotationMetrics() {
	if annotationMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnnotationRequestsTotal)
	prometheus.MustRegister(AnnotationRequestDuration)
	prometheus.MustRegister(AnnotationTokensTotal)
	prometheus.MustRegister(AnnotationParseFailuresTotal)
	annotationMetricsRegistered = true
}
