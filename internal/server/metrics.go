package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters and histograms exported on /metrics.
type Metrics struct {
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	PredictionsTotal   prometheus.Counter
	RequestErrors      *prometheus.CounterVec
}

// NewMetrics registers the server metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SimulationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kcet_simulations_total",
				Help: "Total number of mock allotment simulations by predicted outcome",
			},
			[]string{"outcome"},
		),
		SimulationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "kcet_simulation_duration_seconds",
				Help:    "Duration of mock allotment simulations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		PredictionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "kcet_predictions_total",
				Help: "Total number of rank predictions served",
			},
		),
		RequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kcet_request_errors_total",
				Help: "Total number of rejected or failed API requests",
			},
			[]string{"route", "kind"},
		),
	}
}
