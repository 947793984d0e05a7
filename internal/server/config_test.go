package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parlorchat/parlor/internal/chat"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(4096), cfg.MaxMessageSize)
	assert.Equal(t, chat.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, chat.DefaultPalette, cfg.Palette)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHAT_ENV", "prod")
	t.Setenv("CHAT_PORT", ":9090")
	t.Setenv("CHAT_ALLOWED_ORIGINS", "https://chat.example.com, https://chat.example.org")
	t.Setenv("CHAT_MAX_MESSAGE_SIZE", "1024")
	t.Setenv("CHAT_HISTORY_LIMIT", "25")
	t.Setenv("CHAT_PALETTE", "teal,coral , olive")
	t.Setenv("CHAT_SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":9090", cfg.Port)
	assert.Equal(t, []string{"https://chat.example.com", "https://chat.example.org"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.MaxMessageSize)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.Equal(t, []string{"teal", "coral", "olive"}, cfg.Palette)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestSetConfigSanitizesZeroValues(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	SetConfig(&Config{})
	cfg := currentConfig()

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, int64(4096), cfg.MaxMessageSize)
	assert.Equal(t, chat.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.Equal(t, chat.DefaultPalette, cfg.Palette)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestSetConfigNormalizesOrigins(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	SetConfig(&Config{
		AllowedOrigins: []string{"HTTP://Chat.Example.COM", "not a url", ""},
	})
	cfg := currentConfig()

	require.Equal(t, []string{"http://chat.example.com"}, cfg.AllowedOrigins)
}

func TestCurrentConfigReturnsCopies(t *testing.T) {
	t.Cleanup(func() { SetConfig(nil) })

	SetConfig(&Config{AllowedOrigins: []string{"http://chat.example.com"}})

	cfg := currentConfig()
	cfg.AllowedOrigins[0] = "http://mutated.example.com"
	cfg.Palette[0] = "mutated"

	fresh := currentConfig()
	assert.Equal(t, "http://chat.example.com", fresh.AllowedOrigins[0])
	assert.Equal(t, chat.DefaultPalette[0], fresh.Palette[0])
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , b ,"))
	assert.Nil(t, splitCSV(""))
	assert.Nil(t, splitCSV(" , ,"))
}
