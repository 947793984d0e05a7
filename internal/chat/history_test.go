package chat_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorchat/parlor/internal/chat"
)

func msg(i int) chat.Message {
	return chat.Message{Time: int64(i), Text: fmt.Sprintf("m%d", i), Author: "a", Color: "red"}
}

func TestHistoryKeepsArrivalOrder(t *testing.T) {
	h := chat.NewHistory(10)
	for i := 0; i < 5; i++ {
		h.Append(msg(i))
	}

	snap := h.Snapshot()
	require.Len(t, snap, 5)
	for i, m := range snap {
		assert.Equal(t, msg(i), m)
	}
}

func TestHistoryDropsOldestBeyondLimit(t *testing.T) {
	const limit = 100
	h := chat.NewHistory(limit)
	for i := 0; i < 150; i++ {
		h.Append(msg(i))
	}

	require.Equal(t, limit, h.Len())
	snap := h.Snapshot()
	require.Len(t, snap, limit)
	assert.Equal(t, msg(50), snap[0])
	assert.Equal(t, msg(149), snap[limit-1])
}

func TestHistoryLengthIsMinOfAppendsAndLimit(t *testing.T) {
	for _, n := range []int{0, 1, 99, 100, 101, 250} {
		h := chat.NewHistory(100)
		for i := 0; i < n; i++ {
			h.Append(msg(i))
		}
		want := n
		if want > 100 {
			want = 100
		}
		assert.Equal(t, want, h.Len(), "after %d appends", n)
	}
}

func TestSnapshotIsStableAgainstLaterAppends(t *testing.T) {
	h := chat.NewHistory(10)
	h.Append(msg(0))

	snap := h.Snapshot()
	h.Append(msg(1))
	h.Append(msg(2))

	require.Len(t, snap, 1)
	assert.Equal(t, msg(0), snap[0])
}

func TestNewHistoryDefaultsLimit(t *testing.T) {
	h := chat.NewHistory(0)
	for i := 0; i < chat.DefaultHistoryLimit+10; i++ {
		h.Append(msg(i))
	}
	assert.Equal(t, chat.DefaultHistoryLimit, h.Len())
}
