// Package metrics exposes Prometheus instrumentation for the ingestion
// workflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for non-failure ingestions. Failure outcomes reuse the
// failure kind strings.
const (
	OutcomeNew       = "new"
	OutcomeDuplicate = "duplicate"
	OutcomeSkipped   = "skipped"
)

var (
	// IngestionsTotal counts workflow invocations by outcome.
	IngestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paperbridge_ingestions_total",
		Help: "Ingestion workflow invocations by outcome.",
	}, []string{"outcome"})

	// IngestionDuration observes end-to-end workflow latency.
	IngestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paperbridge_ingestion_seconds",
		Help:    "End-to-end ingestion workflow duration.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	// PollAttemptsTotal counts task status queries.
	PollAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperbridge_poll_attempts_total",
		Help: "Task status queries issued by the poller.",
	})
)

// ObserveIngestion records one finished workflow invocation.
func ObserveIngestion(outcome string, elapsed time.Duration) {
	IngestionsTotal.WithLabelValues(outcome).Inc()
	IngestionDuration.Observe(elapsed.Seconds())
}

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
