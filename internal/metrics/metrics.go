package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transfer-engine counters. Served by the health HTTP
// listener via promhttp.
type Metrics struct {
	TransfersExecuted  prometheus.Counter
	Pickups            prometheus.Counter
	ValidationRejected prometheus.Counter
	RevisionConflicts  prometheus.Counter
	RetriesExhausted   prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TransfersExecuted: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftd_transfers_executed_total",
			Help: "Swap transfers successfully applied.",
		}),
		Pickups: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftd_pickups_total",
			Help: "Pool pickups successfully applied.",
		}),
		ValidationRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftd_validation_rejected_total",
			Help: "Transfer requests rejected by validation.",
		}),
		RevisionConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftd_revision_conflicts_total",
			Help: "Optimistic-lock conflicts hit while saving state.",
		}),
		RetriesExhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "draftd_retries_exhausted_total",
			Help: "Operations that gave up after the retry budget.",
		}),
	}
}
