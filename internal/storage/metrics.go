package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsStoredTotal counts journaled events by backend.
	EventsStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propshare_journal_events_stored_total",
			Help: "Total number of domain events written to the journal",
		},
		[]string{"backend"},
	)

	// StoreErrorsTotal counts failed journal writes.
	StoreErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_journal_store_errors_total",
		Help: "Total number of failed journal writes",
	})
)
