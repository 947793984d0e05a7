// Package server constructs and starts the Parlor HTTP service with helpers
// that apply sensible production defaults.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/chat"
)

var (
	hub    *chat.Hub
	logger = zerolog.Nop()
	pumpWG sync.WaitGroup
)

// Init applies the configuration and builds the logger and hub. It must be
// called before SetupRoutes or StartHub.
func Init(cfg *Config) {
	SetConfig(cfg)
	current := currentConfig()

	logger = NewLogger(current.Env)
	hub = chat.NewHub(
		chat.NewColorPool(current.Palette),
		chat.NewHistory(current.HistoryLimit),
		logger,
	)
}

// StartHub starts the hub's event loop in a separate goroutine. This should
// be called before starting the HTTP server.
func StartHub() {
	go hub.Run()
	logger.Info().Msg("hub started and ready to manage websocket connections")
}

// GetHub returns the hub instance for shutdown coordination and tests.
func GetHub() *chat.Hub {
	return hub
}

// ShutdownHub stops the hub and waits for all client pump goroutines to
// finish, up to the timeout.
func ShutdownHub(timeout time.Duration) error {
	if err := hub.Shutdown(timeout); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		pumpWG.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info().Msg("all client goroutines finished")
		return nil
	case <-time.After(timeout):
		logger.Warn().Msg("timeout waiting for client goroutines")
		return context.DeadlineExceeded
	}
}

// CreateServer creates and configures an HTTP server with the specified port
// and handler. It sets reasonable timeout values for production use.
func CreateServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// StartServer starts the HTTP server and begins listening for connections.
func StartServer(server *http.Server) error {
	logger.Info().Str("addr", server.Addr).Msg("server listening")
	return server.ListenAndServe()
}

// ShutdownServer gracefully shuts down the HTTP server, waiting for active
// connections to close or until the timeout is reached.
func ShutdownServer(server *http.Server, timeout time.Duration) error {
	logger.Info().Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
		return err
	}

	logger.Info().Msg("http server shutdown completed")
	return nil
}
