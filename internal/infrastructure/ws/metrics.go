package ws

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "broker_sessions_connected",
		Help: "Number of currently connected websocket sessions.",
	})

	envelopesRouted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_envelopes_routed_total",
		Help: "Envelopes delivered to subscriber sessions.",
	})

	envelopesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "broker_envelopes_dropped_total",
		Help: "Envelopes dropped because a subscriber buffer was full.",
	})
)
