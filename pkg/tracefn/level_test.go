package tracefn

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"  error  ", LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	for _, input := range []string{"", "verbose", "tracee", "info!"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseLevel(input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown level")
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "trace", LevelTrace.String())
	assert.Equal(t, "debug", LevelDebug.String())
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestLevelSlogMapping(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelDebug.Slog())
	assert.Equal(t, slog.LevelInfo, LevelInfo.Slog())
	assert.Equal(t, slog.LevelWarn, LevelWarn.Slog())
	assert.Equal(t, slog.LevelError, LevelError.Slog())

	// trace has no slog constant; it must sort below debug so handlers can
	// opt in explicitly
	assert.Less(t, LevelTrace.Slog(), slog.LevelDebug)
}

func TestLevelNamesOrder(t *testing.T) {
	assert.Equal(t, []string{"trace", "debug", "info", "warn", "error"}, LevelNames())
}
