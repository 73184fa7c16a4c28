// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vendor API metrics
var (
	// OuraFetchesTotal tracks Oura API fetches by resource and status.
	OuraFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oura_fetches_total",
			Help: "Total Oura API fetches by resource and status",
		},
		[]string{"resource", "status"},
	)

	// OuraFetchDuration tracks Oura API fetch latency in seconds.
	OuraFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oura_fetch_duration_seconds",
			Help:    "Oura API fetch duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)
)

// Poller metrics
var (
	// PollCyclesTotal tracks poll cycles by outcome.
	PollCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_cycles_total",
			Help: "Total poll cycles by outcome",
		},
		[]string{"status"},
	)

	// PollCycleDuration tracks full poll cycle duration in seconds.
	PollCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poll_cycle_duration_seconds",
			Help:    "Poll cycle duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)
)

// Fan-out metrics
var (
	// WebsocketClientsCurrent tracks currently connected websocket clients.
	WebsocketClientsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients_current",
			Help: "Currently connected websocket clients",
		},
	)

	// BroadcastsTotal tracks published update events by event type.
	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "broadcasts_total",
			Help: "Published update events by event type",
		},
		[]string{"type"},
	)

	// PrunedClientsTotal tracks clients dropped for failed delivery.
	PrunedClientsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pruned_clients_total",
			Help: "Websocket clients dropped after failed delivery",
		},
	)
)

// Webhook metrics
var (
	// WebhookEventsTotal tracks accepted webhook notifications by data type.
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Accepted webhook notifications by data type",
		},
		[]string{"data_type"},
	)

	// WebhookVerificationsTotal tracks verification attempts by result.
	WebhookVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_verifications_total",
			Help: "Webhook verification attempts by result",
		},
		[]string{"result"},
	)
)
