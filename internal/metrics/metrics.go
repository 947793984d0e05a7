// Package metrics exposes Prometheus instrumentation for the relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveSessions tracks the number of currently registered sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "parlor",
		Subsystem: "hub",
		Name:      "active_sessions",
		Help:      "Number of currently connected chat sessions.",
	})

	// ColorsAvailable tracks how many palette colors remain claimable.
	ColorsAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "parlor",
		Subsystem: "hub",
		Name:      "colors_available",
		Help:      "Number of display colors currently claimable from the pool.",
	})

	// BroadcastMessages counts chat messages fanned out to all sessions.
	BroadcastMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parlor",
		Subsystem: "hub",
		Name:      "broadcast_messages_total",
		Help:      "Total chat messages broadcast to connected sessions.",
	})

	// RejectedFrames counts inbound frames discarded without processing,
	// labelled by reason.
	RejectedFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "parlor",
		Subsystem: "hub",
		Name:      "rejected_frames_total",
		Help:      "Total inbound frames discarded, by reason.",
	}, []string{"reason"})

	// EvictedSessions counts sessions removed because their outbound buffer
	// was full at broadcast time.
	EvictedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "parlor",
		Subsystem: "hub",
		Name:      "evicted_sessions_total",
		Help:      "Total sessions evicted for unresponsive transport channels.",
	})
)

// Handler serves the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
