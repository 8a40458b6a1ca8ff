// Package ctxlog builds the CLI's slog logger from a level name and carries
// it through a run in the context, so actions log without a global.
package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached by WithLogger. Code run without
// one, as in package tests, gets a logger that discards.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog.Level. "critical" and "quiet" map
// to error. Unknown names fall back to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "critical", "quiet":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text slog.Logger writing to outW at the given level. It does
// not set the global logger.
func New(levelStr string, outW io.Writer) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(levelStr)}
	return slog.New(slog.NewTextHandler(outW, handlerOpts))
}
