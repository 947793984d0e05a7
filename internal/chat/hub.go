// Package chat coordinates session registration, message broadcast, and
// connection cleanup for the Parlor relay via the Hub type.
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor/internal/metrics"
)

// Hub owns the set of live sessions together with the color pool and message
// history. Connection accept, inbound frames, and disconnects all funnel into
// one event loop, so every mutation of shared state is serialized in arrival
// order. The mutex only covers the observer methods that read state from
// outside the loop.
type Hub struct {
	log zerolog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	pool     *ColorPool
	history  *History

	register   chan *Session
	unregister chan uuid.UUID
	inbound    chan inboundFrame

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

type inboundFrame struct {
	sid     uuid.UUID
	payload []byte
}

// NewHub creates a Hub around the given color pool and history. The returned
// Hub does nothing until Run is started.
func NewHub(pool *ColorPool, history *History, logger zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		log:        logger,
		sessions:   make(map[uuid.UUID]*Session),
		pool:       pool,
		history:    history,
		register:   make(chan *Session),
		unregister: make(chan uuid.UUID),
		inbound:    make(chan inboundFrame),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Connect hands a new transport channel to the hub and returns the session id
// the transport uses to correlate later frames and the disconnect. The
// history replay, if any, is queued on the handle by the event loop.
func (h *Hub) Connect(handle Handle) uuid.UUID {
	s := newSession(handle)
	select {
	case h.register <- s:
	case <-h.ctx.Done():
	}
	return s.id
}

// Dispatch routes one raw inbound frame to the session's state machine.
func (h *Hub) Dispatch(sid uuid.UUID, payload []byte) {
	select {
	case h.inbound <- inboundFrame{sid: sid, payload: payload}:
	case <-h.ctx.Done():
	}
}

// Disconnect removes the session and releases its color, if it held one.
// Safe to call more than once for the same session.
func (h *Hub) Disconnect(sid uuid.UUID) {
	select {
	case h.unregister <- sid:
	case <-h.ctx.Done():
	}
}

// Run executes the hub's event loop until Shutdown is called. It should run
// in its own goroutine.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeSessions()
			return

		case s := <-h.register:
			h.addSession(s)

		case sid := <-h.unregister:
			h.removeSession(sid)

		case frame := <-h.inbound:
			h.handleFrame(frame)
		}
	}
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	total := len(h.sessions)
	snapshot := h.history.Snapshot()
	h.mu.Unlock()

	metrics.ActiveSessions.Set(float64(total))
	h.log.Info().Str("addr", s.handle.Addr()).Int("total", total).Msg("session registered")

	if len(snapshot) == 0 {
		return
	}
	payload, err := EncodeHistory(snapshot)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding history replay")
		return
	}
	if !s.handle.Send(payload) {
		h.log.Warn().Str("addr", s.handle.Addr()).Msg("history replay dropped, send buffer full")
	}
}

func (h *Hub) removeSession(sid uuid.UUID) {
	h.mu.Lock()
	s, ok := h.sessions[sid]
	if !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, sid)
	if s.color != "" {
		h.pool.Release(s.color)
	}
	total := len(h.sessions)
	available := h.pool.Len()
	h.mu.Unlock()

	_ = s.handle.Close()
	metrics.ActiveSessions.Set(float64(total))
	metrics.ColorsAvailable.Set(float64(available))
	h.log.Info().Str("addr", s.handle.Addr()).Str("name", s.name).Int("total", total).Msg("session unregistered")
}

func (h *Hub) handleFrame(frame inboundFrame) {
	h.mu.RLock()
	s, ok := h.sessions[frame.sid]
	h.mu.RUnlock()
	if !ok {
		return
	}

	env, err := DecodeEnvelope(frame.payload)
	if err != nil {
		metrics.RejectedFrames.WithLabelValues("parse_error").Inc()
		h.log.Warn().Err(err).Str("addr", s.handle.Addr()).Msg("discarding unparseable frame")
		return
	}

	switch env.Type {
	case KindUserData:
		h.handleUserData(s, env.Data)
	case KindChat:
		h.handleChat(s, env.Data)
	default:
		metrics.RejectedFrames.WithLabelValues("unknown_kind").Inc()
		h.log.Warn().Str("addr", s.handle.Addr()).Str("kind", env.Type).Msg("unexpected frame kind")
	}
}

// handleUserData merges profile fields into the session. The first update
// that carries a name identifies the session and claims a color; later name
// changes never claim a second one.
func (h *Hub) handleUserData(s *Session, data json.RawMessage) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		metrics.RejectedFrames.WithLabelValues("parse_error").Inc()
		h.log.Warn().Err(err).Str("addr", s.handle.Addr()).Msg("discarding malformed userData frame")
		return
	}

	h.mu.Lock()
	named := s.mergeProfile(fields)
	claim := named && !s.identified
	if claim {
		s.identified = true
		if color, ok := h.pool.Claim(); ok {
			s.color = color
		}
	}
	name, color := s.name, s.color
	available := h.pool.Len()
	h.mu.Unlock()

	if !claim {
		return
	}

	metrics.ColorsAvailable.Set(float64(available))
	if color == "" {
		// Pool depleted: the session is identified but stays uncolored.
		h.log.Warn().Str("addr", s.handle.Addr()).Str("name", name).Msg("color pool depleted, session gets no color")
		return
	}

	h.log.Info().Str("addr", s.handle.Addr()).Str("name", name).Str("color", color).Msg("session identified")
	payload, err := EncodeColor(color)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding color assignment")
		return
	}
	if !s.handle.Send(payload) {
		h.log.Warn().Str("addr", s.handle.Addr()).Msg("color assignment dropped, send buffer full")
	}
}

// handleChat sanitizes, records, and fans out one chat message. Frames from
// sessions that never identified are dropped rather than broadcast with a
// blank author.
func (h *Hub) handleChat(s *Session, data json.RawMessage) {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		metrics.RejectedFrames.WithLabelValues("parse_error").Inc()
		h.log.Warn().Err(err).Str("addr", s.handle.Addr()).Msg("discarding malformed chat frame")
		return
	}

	h.mu.RLock()
	identified := s.identified
	author, color := s.name, s.color
	h.mu.RUnlock()

	if !identified {
		metrics.RejectedFrames.WithLabelValues("unidentified").Inc()
		h.log.Warn().Str("addr", s.handle.Addr()).Msg("dropping chat frame from unidentified session")
		return
	}

	msg := Message{
		Time:   time.Now().UnixMilli(),
		Text:   EscapeText(text),
		Author: EscapeText(author),
		Color:  color,
	}

	h.mu.Lock()
	h.history.Append(msg)
	h.mu.Unlock()

	payload, err := EncodeMessage(msg)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding chat broadcast")
		return
	}
	h.broadcast(payload)
}

// broadcast delivers payload to every registered session, including the
// sender. Sessions whose send buffer is full are evicted so one slow consumer
// cannot wedge the loop.
func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	h.log.Debug().Int("sessions", len(targets)).Msg("broadcasting message")
	metrics.BroadcastMessages.Inc()

	var failed []*Session
	for _, s := range targets {
		if !s.handle.Send(payload) {
			failed = append(failed, s)
		}
	}

	for _, s := range failed {
		metrics.EvictedSessions.Inc()
		h.log.Warn().Str("addr", s.handle.Addr()).Msg("evicting session with full send buffer")
		h.removeSession(s.id)
	}
}

// closeSessions tears down every transport channel during shutdown.
func (h *Hub) closeSessions() {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		_ = s.handle.Close()
	}
	h.log.Info().Int("sessions", len(targets)).Msg("closed all session connections")
}

// Shutdown stops the event loop and closes all connections. It returns
// context.DeadlineExceeded when the loop does not stop within the timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.log.Info().Msg("initiating hub shutdown")
	h.cancel()

	select {
	case <-h.done:
		h.log.Info().Msg("hub shutdown completed")
		return nil
	case <-time.After(timeout):
		h.log.Warn().Msg("hub shutdown timeout reached")
		return context.DeadlineExceeded
	}
}

// SessionCount reports the number of registered sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ColorsAvailable reports how many colors remain claimable.
func (h *Hub) ColorsAvailable() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.pool.Len()
}

// HistoryLen reports how many messages the history currently retains.
func (h *Hub) HistoryLen() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.history.Len()
}

// SessionInfo returns a snapshot of one session's identity state.
func (h *Hub) SessionInfo(sid uuid.UUID) (SessionInfo, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.sessions[sid]
	if !ok {
		return SessionInfo{}, false
	}
	return s.info(), true
}
