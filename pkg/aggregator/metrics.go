package aggregator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "camd_provider_fetch_duration_seconds",
			Help:    "Time taken by individual provider adapters",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30},
		},
		[]string{"provider"},
	)

	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camd_provider_fetch_total",
			Help: "Total number of provider fetch attempts",
		},
		[]string{"provider", "status"}, // success or error
	)

	collectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "camd_collection_total",
			Help: "Total number of aggregation runs",
		},
		[]string{"status"}, // success, partial, or empty
	)

	offeringCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "camd_offerings",
			Help: "Number of offerings in the last aggregation",
		},
	)
)
