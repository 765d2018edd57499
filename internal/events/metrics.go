package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EmittedTotal counts emitted domain events by type.
	EmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propshare_events_emitted_total",
			Help: "Total number of domain events emitted",
		},
		[]string{"type"},
	)

	// DroppedTotal counts events dropped because a subscriber was full.
	DroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_events_dropped_total",
		Help: "Total number of domain events dropped on full subscriber buffers",
	})

	// SubscribersGauge tracks active bus subscribers.
	SubscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_events_subscribers",
		Help: "Number of active event bus subscribers",
	})
)
