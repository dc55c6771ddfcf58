// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track the live-connection registry and broadcast path.
var (
	// FeedConnectedClients tracks the number of currently joined feed members.
	FeedConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_connected_clients",
			Help: "Number of currently connected feed clients",
		},
	)

	// FeedBroadcastsTotal counts broadcast invocations.
	FeedBroadcastsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_broadcasts_total",
			Help: "Total number of feed broadcasts",
		},
	)

	// FeedSlowClientsEvicted counts members dropped because their outbound
	// buffer filled up.
	FeedSlowClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_slow_clients_evicted_total",
			Help: "Total number of feed clients evicted for slow consumption",
		},
	)

	// FeedPingFailures counts keepalive pings that could not be written.
	FeedPingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_ping_failures_total",
			Help: "Total number of failed keepalive pings",
		},
	)

	// FeedMessageSendDuration measures the time to write one message to one client.
	FeedMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_message_send_duration_seconds",
			Help:    "Time taken to write a feed message to a client",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		},
	)

	// FeedBacklogArticles measures how many articles a joining client replays.
	FeedBacklogArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_backlog_articles",
			Help:    "Number of backlog articles replayed to a joining client",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

// Business metrics track application-specific operations.
var (
	// ArticlesTotal tracks total number of articles in the database.
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)

	// ArticlesGeneratedTotal counts synthetic articles created.
	ArticlesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_generated_total",
			Help: "Total number of synthetic articles generated",
		},
	)

	// AccountsRegisteredTotal counts successful account registrations.
	AccountsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_registered_total",
			Help: "Total number of registered accounts",
		},
	)

	// AuthAttemptsTotal counts login attempts by outcome.
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)
)

// RecordAuthAttempt records a login attempt outcome ("success" or "failure").
func RecordAuthAttempt(success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttemptsTotal.WithLabelValues(result).Inc()
}
