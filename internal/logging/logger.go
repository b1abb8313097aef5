// Package logging wraps log/slog with the process-wide logger used by every package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

// Config holds logging configuration.
type Config struct {
	Level      string // debug | info | warn | error
	Output     io.Writer
	JSONFormat bool
}

// Initialize installs the logger described by cfg as the default.
func Initialize(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler = slog.NewTextHandler(out, opts)
	if cfg.JSONFormat {
		h = slog.NewJSONHandler(out, opts)
	}

	l := slog.New(h)
	current.Store(l)
	slog.SetDefault(l)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// logger falls back to slog's default until Initialize runs.
func logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { logger().Debug(msg, args...) }

func Info(msg string, args ...any) { logger().Info(msg, args...) }

func Warn(msg string, args ...any) { logger().Warn(msg, args...) }

func Error(msg string, args ...any) { logger().Error(msg, args...) }
