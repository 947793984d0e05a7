// Package server manages individual WebSocket clients, handling read/write
// pumps and lifecycle control for each connection.
package server

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/parlorchat/parlor/internal/chat"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client wraps one WebSocket connection and implements chat.Handle. Outbound
// frames from the hub are queued on a buffered channel and drained by the
// write pump; inbound frames are forwarded to the hub by the read pump.
type Client struct {
	conn           *websocket.Conn
	send           chan []byte
	hub            *chat.Hub
	id             uuid.UUID
	addr           string
	maxMessageSize int64
	done           chan struct{}
	closeOnce      sync.Once
}

// NewClient creates a Client around an upgraded connection. Start must be
// called to register it with the hub and launch the pumps.
func NewClient(conn *websocket.Conn, h *chat.Hub, addr string) *Client {
	cfg := currentConfig()
	if conn != nil {
		conn.SetReadLimit(cfg.MaxMessageSize)
	}

	return &Client{
		conn:           conn,
		send:           make(chan []byte, 256),
		hub:            h,
		addr:           addr,
		maxMessageSize: cfg.MaxMessageSize,
		done:           make(chan struct{}),
	}
}

// Start registers the client with the hub and launches the read and write
// pumps. The hub replays history onto the send queue before the write pump
// drains it, so no frame is lost at startup.
func (c *Client) Start() {
	c.id = c.hub.Connect(c)

	pumpWG.Add(2)
	go func() {
		defer pumpWG.Done()
		c.writePump()
	}()
	go func() {
		defer pumpWG.Done()
		c.readPump()
	}()
}

// Send queues a payload for delivery. It never blocks; false means the
// buffer is full and the hub should treat the client as unresponsive.
func (c *Client) Send(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// Close tears down the connection once. Safe to call from both the hub and
// the pumps.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// Addr reports the remote address for logging.
func (c *Client) Addr() string {
	return c.addr
}

// setupReadConnection configures read deadlines and the pong handler.
func (c *Client) setupReadConnection() {
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Warn().Err(err).Str("addr", c.addr).Msg("setting initial read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("setting read deadline in pong handler")
		}
		return nil
	})
}

// logReadError classifies a read failure so expected disconnects stay quiet.
func (c *Client) logReadError(err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		logger.Warn().Str("addr", c.addr).Int64("limit", c.maxMessageSize).Msg("frame exceeded maximum size")

	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseAbnormalClosure):
		logger.Debug().Str("addr", c.addr).Msg("client disconnected")

	case errors.Is(err, io.EOF) || isExpectedCloseError(err):
		logger.Debug().Str("addr", c.addr).Msg("client connection closed")

	default:
		logger.Warn().Err(err).Str("addr", c.addr).Msg("websocket read error")
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Disconnect(c.id)
		_ = c.Close()
	}()

	c.setupReadConnection()

	for {
		_, rawMessage, err := c.conn.ReadMessage()
		if err != nil {
			c.logReadError(err)
			return
		}
		c.hub.Dispatch(c.id, rawMessage)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case <-c.done:
			// Best effort; the connection may already be gone.
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.send:
			if !c.writeTextMessage(message) {
				return
			}

		case <-ticker.C:
			if !c.writePing() {
				return
			}
		}
	}
}

// writeTextMessage writes a frame together with any further queued frames.
func (c *Client) writeTextMessage(message []byte) bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logger.Warn().Err(err).Str("addr", c.addr).Msg("setting write deadline")
		return false
	}

	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		if !isExpectedCloseError(err) {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("creating frame writer")
		}
		return false
	}

	if _, err := w.Write(message); err != nil {
		logger.Warn().Err(err).Str("addr", c.addr).Msg("writing frame")
		return false
	}

	n := len(c.send)
	for i := 0; i < n; i++ {
		if _, err := w.Write([]byte{'\n'}); err != nil {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("writing frame separator")
			return false
		}
		if _, err := w.Write(<-c.send); err != nil {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("writing queued frame")
			return false
		}
	}

	if err := w.Close(); err != nil {
		if !isExpectedCloseError(err) {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("closing frame writer")
		}
		return false
	}
	return true
}

// writePing sends a keepalive ping.
func (c *Client) writePing() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logger.Warn().Err(err).Str("addr", c.addr).Msg("setting ping deadline")
		return false
	}
	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		if !isExpectedCloseError(err) {
			logger.Warn().Err(err).Str("addr", c.addr).Msg("writing ping")
		}
		return false
	}
	return true
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "websocket: close sent") ||
		strings.Contains(errStr, "broken pipe")
}
