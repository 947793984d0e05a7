package chat

import "github.com/google/uuid"

// Handle is the hub's view of one connected transport channel. Sends are
// fire-and-forget: a false return means the payload could not be queued
// (buffer full or channel torn down) and the session should be evicted.
type Handle interface {
	Send(payload []byte) bool
	Close() error
	Addr() string
}

// Session holds the server-side state for one connection: the display name
// and color supplied through identification, plus any other profile fields
// the client sent. A session is owned exclusively by the Hub from Connect
// until disconnect.
type Session struct {
	id         uuid.UUID
	handle     Handle
	name       string
	color      string
	identified bool
	profile    map[string]any
}

func newSession(handle Handle) *Session {
	return &Session{
		id:      uuid.New(),
		handle:  handle,
		profile: make(map[string]any),
	}
}

// mergeProfile folds the fields of a userData frame into the session and
// reports whether the update carried a usable name.
func (s *Session) mergeProfile(fields map[string]any) bool {
	named := false
	for key, value := range fields {
		s.profile[key] = value
		if key == "name" {
			if name, ok := value.(string); ok && name != "" {
				s.name = name
				named = true
			}
		}
	}
	return named
}

// SessionInfo is a read-only snapshot of a session's identity state.
type SessionInfo struct {
	ID         uuid.UUID
	Name       string
	Color      string
	Identified bool
}

func (s *Session) info() SessionInfo {
	return SessionInfo{ID: s.id, Name: s.name, Color: s.color, Identified: s.identified}
}
