package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorchat/parlor/internal/chat"
)

func TestNewColorPoolUsesDefaultPalette(t *testing.T) {
	pool := chat.NewColorPool(nil)
	require.Equal(t, len(chat.DefaultPalette), pool.Len())

	seen := make(map[string]bool)
	for {
		color, ok := pool.Claim()
		if !ok {
			break
		}
		assert.False(t, seen[color], "color %q claimed twice", color)
		seen[color] = true
	}

	for _, color := range chat.DefaultPalette {
		assert.True(t, seen[color], "palette color %q never claimed", color)
	}
}

func TestClaimDepletesToEmpty(t *testing.T) {
	pool := chat.NewColorPool([]string{"teal", "coral"})

	_, ok := pool.Claim()
	require.True(t, ok)
	_, ok = pool.Claim()
	require.True(t, ok)

	color, ok := pool.Claim()
	assert.False(t, ok)
	assert.Empty(t, color)
	assert.Zero(t, pool.Len())
}

func TestReleaseMakesColorClaimableAgain(t *testing.T) {
	pool := chat.NewColorPool([]string{"teal"})

	color, ok := pool.Claim()
	require.True(t, ok)
	require.Equal(t, "teal", color)
	require.Zero(t, pool.Len())

	pool.Release(color)
	require.Equal(t, 1, pool.Len())

	again, ok := pool.Claim()
	assert.True(t, ok)
	assert.Equal(t, "teal", again)
}

func TestReleaseIgnoresEmptyColor(t *testing.T) {
	pool := chat.NewColorPool([]string{"teal"})
	pool.Release("")
	assert.Equal(t, 1, pool.Len())
}

func TestPoolConservation(t *testing.T) {
	pool := chat.NewColorPool(nil)
	initial := pool.Len()

	var held []string
	for i := 0; i < 3; i++ {
		color, ok := pool.Claim()
		require.True(t, ok)
		held = append(held, color)
	}
	assert.Equal(t, initial, pool.Len()+len(held))

	for _, color := range held {
		pool.Release(color)
	}
	assert.Equal(t, initial, pool.Len())
}
