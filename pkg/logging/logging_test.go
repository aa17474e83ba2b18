package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"off", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestParseFields(t *testing.T) {
	fields := parseFields("app=tripmap, env = dev,broken")
	assert.Equal(t, map[string]any{"app": "tripmap", "env": "dev"}, fields)
	assert.Empty(t, parseFields(""))
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "2006-01-02", parseTimeFormat("2006-01-02"))
	assert.NotEmpty(t, parseTimeFormat("garbage"))
}

func TestNewLoggerFromConfigFields(t *testing.T) {
	tl := NewTestLogger(t)
	logger := NewLoggerFromConfig(&Config{Level: "debug", Output: "discard", Fields: map[string]any{"trip": "kansai"}})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	tagged := tl.With().Str("trip", "kansai").Logger()
	tagged.Info().Msg("hello")
	assert.True(t, tl.Contains(`"trip":"kansai"`))
}

func TestContextLogger(t *testing.T) {
	tl := NewTestLogger(t)

	ctx := WithLogger(context.Background(), tl.Logger)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithOperation(ctx, "sync.push")

	Ctx(ctx).Info().Msg("pushing")

	require.Len(t, tl.Lines(), 1)
	assert.True(t, tl.Contains(`"request_id":"req-1"`))
	assert.True(t, tl.Contains(`"operation":"sync.push"`))
	assert.Equal(t, "req-1", RequestID(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, Default(), FromContext(nil))
	assert.Same(t, Default(), FromContext(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := CaptureLoggingForTest(t)
	Info().Str("collection", "coupons").Msg("loaded")
	assert.True(t, tl.Contains(`"collection":"coupons"`))
}

func TestConfigFromEnv(t *testing.T) {
	env := map[string]string{
		"TRIPMAP_LOG_LEVEL":      "warn",
		"LOG_LEVEL":              "debug",
		"LOG_FORMAT":             "json",
		"TRIPMAP_LOG_COMPONENTS": "syncer=debug,live=error,=trace",
		"TRIPMAP_LOG_FIELDS":     "trip=kansai",
		"TRIPMAP_DEVICE":         "pixel",
	}
	cfg := ConfigFromEnv(func(k string) string { return env[k] })

	assert.Equal(t, "warn", cfg.Level, "prefixed variable wins")
	assert.Equal(t, "json", cfg.Format, "unprefixed variable is the fallback")
	assert.Equal(t, map[string]string{"syncer": "debug", "live": "error"}, cfg.Components)
	assert.Equal(t, "kansai", cfg.Fields["trip"])
	assert.Equal(t, "pixel", cfg.Device)

	debug := ConfigFromEnv(func(k string) string {
		if k == "DEBUG" {
			return "1"
		}
		return ""
	})
	assert.Equal(t, "debug", debug.Level)
}

func TestComponentLevels(t *testing.T) {
	prevLevel := zerolog.GlobalLevel()
	prev := *Default()
	t.Cleanup(func() {
		Configure(&Config{Output: "discard"})
		SetDefault(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})

	Configure(&Config{Level: "debug", Output: "discard", Components: map[string]string{"syncer": "warn", "live": "trace"}})

	assert.Equal(t, zerolog.WarnLevel, Component("syncer").GetLevel())
	assert.Equal(t, zerolog.TraceLevel, Component("live").GetLevel())
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel(), "global level admits the most verbose override")
	assert.Equal(t, zerolog.InfoLevel, Component("transport").GetLevel(), "default floor applies without an override")
	assert.Equal(t, zerolog.DebugLevel, Component("store").GetLevel())

	Configure(&Config{Level: "error", Output: "discard"})
	assert.Equal(t, zerolog.ErrorLevel, Component("transport").GetLevel(), "floor never lowers the base level")
}

func TestLoggerWritesServiceAndDeviceToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tripmap.log")
	logger := NewLoggerFromConfig(&Config{Level: "info", Format: "json", Output: path, Device: "laptop"})
	logger.Info().Str("collection", "expenses").Msg("Collection loaded")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"service":"tripmap"`)
	assert.Contains(t, string(raw), `"device":"laptop"`)
	assert.Contains(t, string(raw), `"collection":"expenses"`)
}
