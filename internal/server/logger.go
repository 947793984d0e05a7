// Package server builds the structured logger shared by the transport layer
// and the hub.
package server

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog.Logger configured for the given environment:
// JSON at Info level in prod, human-readable console output at Debug level
// everywhere else.
func NewLogger(env string) zerolog.Logger {
	if env == "prod" {
		return zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}
