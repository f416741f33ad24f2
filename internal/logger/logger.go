package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log *slog.Logger

// stdout carries the MCP stream, so everything goes to stderr.
func init() {
	level := "info"
	if os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	log = newLogger(os.Stderr, level, "text")
}

// Configure replaces the package logger. An unknown level falls back to info
// and any format other than "json" produces text output. DEBUG in the
// environment always wins over the configured level.
func Configure(level, format string) {
	if os.Getenv("DEBUG") != "" {
		level = "debug"
	}
	log = newLogger(os.Stderr, level, format)
}

// SetOutput redirects the package logger, keeping the given level and format.
func SetOutput(w io.Writer, level, format string) {
	log = newLogger(w, level, format)
}

// Slog returns the underlying logger.
func Slog() *slog.Logger {
	return log
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs at info level.
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}
