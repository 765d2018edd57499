package httpserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	WSConnectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propshare_ws_connections",
		Help: "Number of connected event stream clients",
	})

	WSEventsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "propshare_ws_events_sent_total",
		Help: "Total number of events sent over websocket streams",
	})
)
