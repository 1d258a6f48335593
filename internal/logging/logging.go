// Package logging wraps log/slog with the gateway's defaults: JSON records on
// stderr, a level taken from LOG_LEVEL or a flag, and module/version attributes
// on every record.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/matiasleandrokruk/speechgate/internal/api/ctxkeys"
)

// EnvKeyLogLevel is the environment variable read when no explicit level is given.
const EnvKeyLogLevel = "LOG_LEVEL"

// ParseLevel converts a level name to slog.Level. Unknown or empty names map to Info.
func ParseLevel(level string) slog.Level {
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

// NewStructuredLogger returns a JSON logger writing to w.
// Debug level adds source locations.
func NewStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lvl := ParseLevel(level)
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(handler).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a stderr JSON logger as the slog default.
// An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLogger(module, version, level string) *slog.Logger {
	if level == "" {
		level = os.Getenv(EnvKeyLogLevel)
	}
	logger := NewStructuredLogger(os.Stderr, module, version, level)
	slog.SetDefault(logger)
	return logger
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return ctxkeys.WithValue(ctx, ctxkeys.Logger, logger)
}

// FromContext returns the request-scoped logger, or slog.Default when none was set.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkeys.Logger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}
