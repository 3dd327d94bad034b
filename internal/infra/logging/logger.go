// Package logging builds the structured logger for opsctl. Commands
// print their results on stdout; the log goes to stderr so cron and
// pipeline captures keep the two apart.
package logging

import (
	"io"
	"log/slog"
)

// New creates a logger writing text records to w at the given level.
func New(w io.Writer, levelStr string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(levelStr),
	}))
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
