package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransfersTotal counts completed external-to-external transfers.
	TransfersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_settlement_transfers_total",
		Help: "Total number of settlement transfers",
	})

	// ValueMovedTotal accumulates settlement units moved by any operation.
	ValueMovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_settlement_value_moved_total",
		Help: "Total settlement token units moved",
	})

	// DepositsTotal accumulates settlement units deposited from outside.
	DepositsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_settlement_deposits_total",
		Help: "Total settlement token units deposited",
	})

	// CustodyBalance tracks the engine custody balance.
	CustodyBalance = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_settlement_custody_balance",
		Help: "Current engine custody balance in settlement units",
	})
)
