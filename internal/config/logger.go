package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a logger for the given level and format ("json" or
// "text"). Unknown levels fall back to info.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Logger builds the logger described by the configuration.
func (c Config) Logger(w io.Writer) *slog.Logger {
	return NewLogger(c.LogLevel, c.LogFormat, w)
}
