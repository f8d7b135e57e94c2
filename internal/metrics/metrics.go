// Package metrics holds the Prometheus collectors for the intake pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "Form submissions by outcome",
		},
		[]string{"outcome"}, // stored, parse_error, store_error
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_notifications_total",
			Help: "Notification attempts by channel and status",
		},
		[]string{"channel", "status"},
	)

	storeWriteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "intake_store_write_duration_seconds",
			Help:    "Latency of key-value store writes",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
	)
)

// Submission outcomes.
const (
	OutcomeStored     = "stored"
	OutcomeParseError = "parse_error"
	OutcomeStoreError = "store_error"
)

func ObserveSubmission(outcome string) {
	submissionsTotal.WithLabelValues(outcome).Inc()
}

func ObserveNotification(channel, status string) {
	notificationsTotal.WithLabelValues(channel, status).Inc()
}

func ObserveStoreWrite(d time.Duration) {
	storeWriteDuration.Observe(d.Seconds())
}
