// Package slogger defines the structured logger used throughout oxysearch.
package slogger

import (
	"context"
	"strings"
)

// DefaultLogger is used when no logger is configured. It discards everything.
var DefaultLogger Logger = NewDevNullLogger()

// Logger is a key-value structured logger. It mirrors the slog method set so
// adapters for other logging libraries are trivial to write.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)

	// With returns a Logger that includes the given key-value pairs on
	// every message.
	With(keysAndValues ...any) Logger
}

type contextKey string

const loggerKey contextKey = "oxysearch.logger"

// WithLogger returns a new context carrying the given logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns the logger stored in ctx, or DefaultLogger.
func Ctx(ctx context.Context) Logger {
	if ctx == nil {
		return DefaultLogger
	}
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return DefaultLogger
}

// LevelFromString converts a string to a LogLevel. Unknown values map to
// DefaultLogLevel.
func LevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return DefaultLogLevel
	}
}

// IsValidLevel reports whether level names a known log level. "none" is
// accepted and means logging is disabled.
func IsValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error", "none", "":
		return true
	}
	return false
}

// FromString builds a logger for a level name. "none" and "" return a
// DevNullLogger.
func FromString(level string) Logger {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "none":
		return NewDevNullLogger()
	}
	return New(LevelFromString(level))
}
