// Package chat implements the connection registry and broadcast engine for
// the Parlor relay: session lifecycle, color assignment, bounded message
// history, and fan-out of chat messages to every connected session.
//
// The package is transport-agnostic. The WebSocket layer hands each
// connection to the Hub as a Handle and forwards raw frames; everything
// stateful happens on the Hub's single event loop.
package chat
