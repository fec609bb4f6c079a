package config

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/widget-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("SPEECH_CACHE_BACKEND", "")
	t.Setenv("SESSION_IDLE_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gcs", cfg.Speech.CacheBackend)
	assert.Equal(t, "audio/", cfg.Speech.KeyPrefix)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.TextModel)
	assert.Equal(t, "Kore", cfg.AI.Voice)
	assert.Equal(t, 3, cfg.AI.MaxAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SPEECH_CACHE_BACKEND", "Redis")
	t.Setenv("EVALUATION_MAX_ATTEMPTS", "5")
	t.Setenv("SESSION_IDLE_TTL", "90s")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("EVENTS_ENABLED", "not-a-bool")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Speech.CacheBackend)
	assert.Equal(t, 5, cfg.AI.MaxAttempts)
	assert.Equal(t, 90*time.Second, cfg.Sessions.IdleTTL)
	assert.True(t, cfg.Auth.Enabled)
	assert.True(t, cfg.Events.Enabled)
}

func TestEventConfig_GetKafkaBrokers(t *testing.T) {
	c := EventConfig{KafkaBrokers: "a:9092, b:9092,,"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.GetKafkaBrokers())
}

func TestEventConfig_CreateHostBridge(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  EventConfig
		want events.HostBridge
	}{
		{"disabled", EventConfig{Enabled: false, Publisher: "kafka"}, &events.LogHostBridge{}},
		{"mock", EventConfig{Enabled: true, Publisher: "mock"}, &events.MockHostBridge{}},
		{"unknown publisher", EventConfig{Enabled: true, Publisher: "carrier-pigeon"}, &events.LogHostBridge{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge, err := tt.cfg.CreateHostBridge(logger)
			require.NoError(t, err)
			assert.IsType(t, tt.want, bridge)
		})
	}
}
