// Package server applies the shared HTTP middleware stack.
package server

import (
	"net/http"

	"github.com/rs/cors"
)

// WithCORS wraps a handler with CORS headers derived from the configured
// origin allowlist. The WebSocket handshake has its own origin check; this
// covers the plain HTTP surface (health, metrics, chat page).
func WithCORS(h http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(h)
}
