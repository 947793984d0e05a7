package chat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorchat/parlor/internal/chat"
)

func TestEncodeMessageWireShape(t *testing.T) {
	payload, err := chat.EncodeMessage(chat.Message{
		Time:   1700000000000,
		Text:   "hi",
		Author: "Alice",
		Color:  "plum",
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"type":"message","data":{"time":1700000000000,"text":"hi","author":"Alice","color":"plum"}}`,
		string(payload))
}

func TestEncodeColorWireShape(t *testing.T) {
	payload, err := chat.EncodeColor("orange")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"color","data":"orange"}`, string(payload))
}

func TestEncodeHistoryWireShape(t *testing.T) {
	payload, err := chat.EncodeHistory([]chat.Message{
		{Time: 1, Text: "a", Author: "x", Color: "red"},
		{Time: 2, Text: "b", Author: "y", Color: ""},
	})
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"type":"history","data":[
			{"time":1,"text":"a","author":"x","color":"red"},
			{"time":2,"text":"b","author":"y","color":""}
		]}`,
		string(payload))
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := chat.DecodeEnvelope([]byte(`{"type":"userData","data":{"name":"Alice","mood":"curious"}}`))
	require.NoError(t, err)
	assert.Equal(t, chat.KindUserData, env.Type)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Equal(t, "Alice", fields["name"])
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	_, err := chat.DecodeEnvelope([]byte("not json at all"))
	assert.Error(t, err)
}
