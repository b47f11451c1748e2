package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msgram_calculations_total",
		Help: "Calculations by outcome.",
	}, []string{"status"}) // ok | failed

	comparisonsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msgram_comparisons_total",
		Help: "Comparisons by outcome.",
	}, []string{"status"})

	domainErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "msgram_errors_total",
		Help: "Engine errors by kind.",
	}, []string{"kind"})

	releaseSQC = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "msgram_release_sqc",
		Help: "Latest overall quality score per repository.",
	}, []string{"repository"})

	comparisonNorm = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "msgram_comparison_norm",
		Help:    "Frobenius norm of developed minus planned.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1, 2},
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "msgram_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
