package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Recipe book Prometheus metrics.
var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recipebook",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipebook",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipebook",
			Name:      "queries_total",
			Help:      "Total number of recipe queries",
		},
		[]string{"operation"}, // "search" / "filter" / "save"
	)

	IngestedRecipes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recipebook",
			Name:      "ingested_recipes",
			Help:      "Number of recipes in the current store snapshot",
		},
	)

	IngestionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "recipebook",
			Name:      "ingestion_failures_total",
			Help:      "Total number of failed recipe ingestions",
		},
	)
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestDuration,
		HTTPRequestsTotal,
		QueriesTotal,
		IngestedRecipes,
		IngestionFailuresTotal,
	}
}

// Register adds all recipe book metrics to reg.
// Collectors already registered with reg are skipped.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
