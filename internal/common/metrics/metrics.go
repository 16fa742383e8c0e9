package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_processed_total",
			Help: "Total number of assistant messages processed, by intent and classification source",
		},
		[]string{"intent", "source"},
	)

	MessagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_failed_total",
			Help: "Total number of assistant messages that failed processing",
		},
		[]string{"error_code"},
	)

	MessageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "assistant_message_duration_seconds",
			Help: "Duration of message processing in seconds",
		},
		[]string{"intent"},
	)

	ClassifierFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_classifier_fallbacks_total",
			Help: "Fallback classifier invocations, by outcome (classified, unknown)",
		},
		[]string{"outcome"},
	)

	PriceChangesApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_price_changes_applied_total",
			Help: "Total number of confirmed price changes applied",
		},
	)
)
