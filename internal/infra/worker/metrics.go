package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks scheduled generation runs.
type Metrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates and registers the worker metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		JobRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_job_runs_total",
				Help: "Total number of scheduled generation runs by status",
			},
			[]string{"status"},
		),
		JobDurationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "worker_job_duration_seconds",
				Help:    "Duration of scheduled generation runs",
				Buckets: []float64{.01, .05, .1, .5, 1, 5, 30, 60},
			},
		),
		LastSuccessTimestamp: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "worker_job_last_success_timestamp",
				Help: "Unix timestamp of the last successful generation run",
			},
		),
	}
}

// RecordRun records the outcome and duration of one run.
func (m *Metrics) RecordRun(status string, duration time.Duration) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(duration.Seconds())
	if status == "success" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
