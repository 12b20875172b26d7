// Package observability registers the prometheus collectors shared by the
// client store, the sync pusher and the API server.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MutationsTotal counts mutation calls by operation and outcome
	// ("applied" or "ignored").
	MutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_mutations_total",
			Help: "Activity store mutations by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
	PersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_persist_failures_total",
			Help: "Local writes of the activity document that failed.",
		},
	)
	// SyncTotal counts remote sync attempts by direction ("pull", "push") and result.
	SyncTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_sync_total",
			Help: "Remote sync attempts by direction and result.",
		},
		[]string{"direction", "result"},
	)
	StateWrites = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracker_state_writes_total",
			Help: "Documents stored through the state API.",
		},
	)
	DocumentBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tracker_document_bytes",
			Help:    "Size of documents stored through the state API.",
			Buckets: prometheus.ExponentialBuckets(512, 2, 10),
		},
	)
)

func init() {
	prometheus.MustRegister(MutationsTotal, PersistFailures, SyncTotal, StateWrites, DocumentBytes)
}
