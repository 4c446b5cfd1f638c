package slogger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{"debug level", "debug", LevelDebug},
		{"info level", "info", LevelInfo},
		{"warn level", "warn", LevelWarn},
		{"warning alias", "warning", LevelWarn},
		{"error level", "error", LevelError},
		{"uppercase", "DEBUG", LevelDebug},
		{"padded", "  info ", LevelInfo},
		{"invalid level", "invalid", DefaultLogLevel},
		{"empty string", "", DefaultLogLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	require.True(t, IsValidLevel("none"))
	require.True(t, IsValidLevel("Debug"))
	require.False(t, IsValidLevel("verbose"))
}

func TestFromString(t *testing.T) {
	require.IsType(t, &DevNullLogger{}, FromString("none"))
	require.IsType(t, &DevNullLogger{}, FromString(""))
	require.IsType(t, &Slogger{}, FromString("debug"))
}

func TestSloggerWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, WithOutput(&buf))

	logger.Debug("request sent", "query", "golang")
	require.Contains(t, buf.String(), "request sent")
	require.Contains(t, buf.String(), "golang")
	require.Contains(t, buf.String(), "slogger_test.go")

	buf.Reset()
	logger.With("component", "oxylabs").Info("done")
	require.Contains(t, buf.String(), "component")
	require.Contains(t, buf.String(), "oxylabs")
}

func TestSloggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelWarn, WithOutput(&buf))
	logger.Info("hidden")
	require.Empty(t, buf.String())
	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestDevNullLogger(t *testing.T) {
	logger := NewDevNullLogger()
	logger.Debug("debug message", "key", "value")
	logger.Error("error message", "key", "value")
	require.IsType(t, &DevNullLogger{}, logger.With("context", "value"))
}

//nolint:staticcheck // SA1012: nil context is part of the contract under test
func TestContextFunctions(t *testing.T) {
	logger := NewDevNullLogger()

	ctx := WithLogger(nil, logger)
	require.NotNil(t, ctx)
	require.Equal(t, Logger(logger), Ctx(ctx))

	require.Equal(t, DefaultLogger, Ctx(nil))
	require.Equal(t, DefaultLogger, Ctx(context.Background()))
}
