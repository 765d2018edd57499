package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts engine operations by name and outcome.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propshare_engine_operations_total",
			Help: "Total number of engine operations",
		},
		[]string{"operation", "outcome"},
	)

	// FeesRetainedTotal accumulates listing fees, trading fees, and
	// cancellation penalties kept in engine/owner custody.
	FeesRetainedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propshare_engine_fees_retained_total",
			Help: "Total settlement units retained as fees and penalties",
		},
		[]string{"kind"},
	)

	// DividendsPaidTotal accumulates settlement units paid out as dividends.
	DividendsPaidTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_engine_dividends_paid_total",
		Help: "Total settlement units distributed as dividends",
	})

	// ActiveListingsGauge tracks open secondary-market listings.
	ActiveListingsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_engine_active_listings",
		Help: "Number of active share listings",
	})
)
