package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/arabizi-backend/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "info", Format: "json"}).
		Info("translation processed", slog.String("input", "kif 7alk"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kif 7alk", rec["input"])
	assert.Equal(t, "INFO", rec["level"])
	assert.NotContains(t, rec, "source")
}

func TestNewLogger_TextHasShortSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, config.LogConfig{Level: "debug", Format: "text"}).Debug("source test")

	out := buf.String()
	assert.Contains(t, out, `msg="source test"`)
	assert.Regexp(t, regexp.MustCompile(`source=app/logger_test\.go:\d+`), out)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.LogConfig{Level: "warn", Format: "json"})
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})
	assert.Same(t, logger, slog.Default())
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"Error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"debug+2": slog.LevelDebug + 2,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}
