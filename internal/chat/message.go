// Package chat defines the JSON frame formats exchanged with clients and the
// helpers that encode and decode them.
package chat

import "encoding/json"

// Frame kinds understood by the relay. Inbound frames carry KindUserData or
// KindChat; the remaining kinds are outbound only.
const (
	KindUserData = "userData"
	KindChat     = "message"
	KindColor    = "color"
	KindHistory  = "history"
)

// Envelope is the outer structure of every frame: a kind tag plus a payload
// whose shape depends on the kind.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Message is one broadcast chat message. Text and Author are stored already
// escaped; Color is empty when the author never received one.
type Message struct {
	Time   int64  `json:"time"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Color  string `json:"color"`
}

// DecodeEnvelope parses a raw inbound frame.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(payload, &env)
	return env, err
}

func encodeFrame(kind string, data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: kind, Data: raw})
}

// EncodeMessage builds the broadcast frame for a single chat message.
func EncodeMessage(msg Message) ([]byte, error) {
	return encodeFrame(KindChat, msg)
}

// EncodeColor builds the color-assignment frame sent to a newly identified
// session.
func EncodeColor(color string) ([]byte, error) {
	return encodeFrame(KindColor, color)
}

// EncodeHistory builds the replay frame sent to a session right after it
// connects.
func EncodeHistory(msgs []Message) ([]byte, error) {
	return encodeFrame(KindHistory, msgs)
}
