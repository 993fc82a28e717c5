package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportbot_turns_total",
			Help: "Total number of chat turns by routed intent",
		},
		[]string{"intent"},
	)

	SlotCaptures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportbot_slot_captures_total",
			Help: "National ID captures by outcome (stored, updated, unchanged)",
		},
		[]string{"outcome"},
	)

	Enrichments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "supportbot_enrichments_total",
			Help: "Profile enrichments by feature and status",
		},
		[]string{"feature", "status"},
	)

	EnrichmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "supportbot_enrichment_duration_seconds",
			Help:    "Duration of profile enrichment in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"feature"},
	)

	StaleEnrichments = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "supportbot_stale_enrichments_total",
			Help: "Lookup results discarded because a newer turn started",
		},
	)
)
