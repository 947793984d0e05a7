// Package server wires HTTP handlers into a ServeMux for the Parlor
// application via routing helpers.
package server

import (
	"net/http"

	"github.com/parlorchat/parlor/internal/metrics"
)

// SetupRoutes configures and returns an HTTP ServeMux with all application
// routes: health check, WebSocket endpoint, Prometheus metrics, and the chat
// page.
func SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("/ws", WebSocketHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/test", TestPageHandler)
	return mux
}
