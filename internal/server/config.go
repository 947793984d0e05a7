// Package server provides configuration helpers that define runtime defaults
// and validation for the Parlor relay.
package server

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/parlorchat/parlor/internal/chat"
)

// Config holds the server configuration settings.
type Config struct {
	Env             string
	Port            string
	AllowedOrigins  []string
	MaxMessageSize  int64
	HistoryLimit    int
	Palette         []string
	ShutdownTimeout time.Duration
}

var (
	configMu        sync.RWMutex
	activeConfig    Config
	allowedOrigins  map[string]struct{}
	allowAllOrigins bool
)

func init() {
	SetConfig(nil)
}

func defaultConfig() Config {
	return Config{
		Env:  "dev",
		Port: ":8080",
		AllowedOrigins: []string{
			"http://localhost:8080",
		},
		MaxMessageSize:  4096,
		HistoryLimit:    chat.DefaultHistoryLimit,
		Palette:         chat.DefaultPalette,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads the configuration from CHAT_-prefixed environment variables,
// falling back to defaults for anything unset.
func Load() *Config {
	defaults := defaultConfig()

	v := viper.New()
	v.SetEnvPrefix("CHAT")
	v.AutomaticEnv()
	v.SetDefault("env", defaults.Env)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("allowed_origins", strings.Join(defaults.AllowedOrigins, ","))
	v.SetDefault("max_message_size", defaults.MaxMessageSize)
	v.SetDefault("history_limit", defaults.HistoryLimit)
	v.SetDefault("palette", strings.Join(defaults.Palette, ","))
	v.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	cfg := Config{
		Env:             v.GetString("env"),
		Port:            v.GetString("port"),
		AllowedOrigins:  splitCSV(v.GetString("allowed_origins")),
		MaxMessageSize:  v.GetInt64("max_message_size"),
		HistoryLimit:    v.GetInt("history_limit"),
		Palette:         splitCSV(v.GetString("palette")),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}
	return &cfg
}

// splitCSV trims and filters a comma-separated list.
func splitCSV(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func sanitizeConfig(cfg Config) Config {
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	if cfg.Port == "" {
		cfg.Port = ":8080"
	}

	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 4096
	}

	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = chat.DefaultHistoryLimit
	}

	if len(cfg.Palette) == 0 {
		cfg.Palette = chat.DefaultPalette
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	normalizedOrigins, allowAll := normalizeOrigins(cfg.AllowedOrigins)
	cfg.AllowedOrigins = normalizedOrigins

	configMu.Lock()
	defer configMu.Unlock()

	activeConfig = cfg
	allowAllOrigins = allowAll
	allowedOrigins = make(map[string]struct{}, len(normalizedOrigins))
	for _, origin := range normalizedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	return cfg
}

// SetConfig applies the provided configuration. Passing nil resets to defaults.
func SetConfig(cfg *Config) {
	if cfg == nil {
		defaultCfg := defaultConfig()
		sanitizeConfig(defaultCfg)
		return
	}

	sanitized := Config{
		Env:             cfg.Env,
		Port:            cfg.Port,
		AllowedOrigins:  append([]string(nil), cfg.AllowedOrigins...),
		MaxMessageSize:  cfg.MaxMessageSize,
		HistoryLimit:    cfg.HistoryLimit,
		Palette:         append([]string(nil), cfg.Palette...),
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
	sanitizeConfig(sanitized)
}

func currentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()

	cfg := activeConfig
	cfg.AllowedOrigins = append([]string(nil), cfg.AllowedOrigins...)
	cfg.Palette = append([]string(nil), cfg.Palette...)
	return cfg
}
