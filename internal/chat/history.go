package chat

// DefaultHistoryLimit caps how many recent messages are retained for replay
// to newly connected sessions.
const DefaultHistoryLimit = 100

// History is an append-only log of the most recent broadcast messages. When
// the cap is exceeded the oldest entries are dropped.
//
// Like ColorPool, History is owned and serialized by the Hub.
type History struct {
	limit   int
	entries []Message
}

// NewHistory creates an empty history capped at limit entries. Non-positive
// limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Append adds msg to the log, evicting from the front once the cap is hit.
func (h *History) Append(msg Message) {
	h.entries = append(h.entries, msg)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

// Snapshot returns a copy of the current contents in arrival order. The copy
// is stable against later appends.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the number of retained messages.
func (h *History) Len() int {
	return len(h.entries)
}
