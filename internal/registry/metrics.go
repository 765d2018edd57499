package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AssetsTracked tracks the number of asset records.
	AssetsTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_registry_assets_tracked",
		Help: "Number of asset records in the registry",
	})

	// PendingPurchases tracks unresolved whole-asset purchases.
	PendingPurchases = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_registry_pending_purchases",
		Help: "Number of unresolved whole-asset purchases",
	})
)
