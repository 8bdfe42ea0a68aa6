package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clarity_analysis_duration_seconds",
			Help:    "Decision analysis duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"category"},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clarity_analysis_total",
			Help: "Total analyses by result kind",
		},
		[]string{"kind"},
	)

	PersistenceFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clarity_persistence_failures_total",
			Help: "History writes that failed and were surfaced as warnings",
		},
	)

	StaleResultsDiscarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clarity_stale_results_discarded_total",
			Help: "Completed analyses superseded by a newer request before finishing",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clarity_cache_hits_total",
			Help: "Analyses served from the cache",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clarity_cache_misses_total",
			Help: "Analyses that required a provider call",
		},
	)

	ProsPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clarity_pros_percentage",
			Help:    "Distribution of pros percentages across analyses",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

func Init() {
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(PersistenceFailures)
	prometheus.MustRegister(StaleResultsDiscarded)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(ProsPercentage)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
