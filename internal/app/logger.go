package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/arabizi-backend/internal/config"
)

// NewLogger builds the process logger on stderr and installs it as the
// slog default.
//
// "json" is meant for production. Any other format selects the text handler
// with short file:line sources for local runs. Unknown levels fall back to
// info.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	opts.AddSource = true
	opts.ReplaceAttr = shortSource
	return slog.New(slog.NewTextHandler(w, opts))
}

// shortSource renders source as "dir/file.go:line".
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}
	src, ok := a.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return a
	}
	file := filepath.Join(filepath.Base(filepath.Dir(src.File)), filepath.Base(src.File))
	return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, src.Line))
}

// parseLevel accepts the slog level names in any case, including offsets
// such as "debug+2".
func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
