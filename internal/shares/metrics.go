package shares

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SharesMovedTotal counts share units moved, by movement kind.
	SharesMovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "propshare_shares_moved_total",
			Help: "Total share units moved",
		},
		[]string{"kind"},
	)

	// BooksTracked tracks the number of fractionalized assets.
	BooksTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_shares_books_tracked",
		Help: "Number of share books (fractionalized assets)",
	})
)
