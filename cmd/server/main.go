package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/parlorchat/parlor/internal/server"
)

func main() {
	// Optional .env for local development; env vars win either way.
	_ = godotenv.Load()

	cfg := server.Load()
	server.Init(cfg)

	server.StartHub()

	mux := server.SetupRoutes()
	handler := server.WithCORS(mux, cfg.AllowedOrigins)
	httpServer := server.CreateServer(cfg.Port, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.StartServer(httpServer)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Exit(1)
		}
		return
	}

	_ = server.ShutdownServer(httpServer, cfg.ShutdownTimeout)
	_ = server.ShutdownHub(cfg.ShutdownTimeout)
}
