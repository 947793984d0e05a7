// Package server implements the HTTP and WebSocket transport for the Parlor
// relay.
//
// The implementation is organized into specialized files for configuration,
// client pumps, routing, and HTTP handlers. The chat semantics themselves
// live in internal/chat; this package only moves frames between sockets and
// the hub.
package server
