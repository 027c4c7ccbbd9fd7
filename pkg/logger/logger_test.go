package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, level LogLevel) (*Logger, *bytes.Buffer) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := New(level, logPath, false)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })

	var buf bytes.Buffer
	logger.logger.SetOutput(&buf)
	return logger, &buf
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newTestLogger(t, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "[WARN] warn message")
}

func TestFormattedMessages(t *testing.T) {
	logger, buf := newTestLogger(t, LevelDebug)

	logger.Info("turn %d finished in %s", 3, "120ms")

	assert.Contains(t, buf.String(), "[INFO] turn 3 finished in 120ms")
}

func TestNewCreatesLogDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dir", "app.log")

	logger, err := New(LevelInfo, logPath, true)
	require.NoError(t, err)
	defer logger.Close()

	_, err = os.Stat(logPath)
	assert.NoError(t, err)
}

func TestPreserveAppendsToExistingFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(logPath, []byte("earlier run\n"), 0644))

	logger, err := New(LevelInfo, logPath, true)
	require.NoError(t, err)
	logger.Info("later run")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "earlier run")
	assert.Contains(t, string(data), "later run")
}

func TestTruncateWithoutPreserve(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(logPath, []byte("earlier run\n"), 0644))

	logger, err := New(LevelInfo, logPath, false)
	require.NoError(t, err)
	logger.Info("fresh run")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "earlier run")
	assert.Contains(t, string(data), "fresh run")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.input), "parseLevel(%q)", tt.input)
	}
}

func TestPackageFunctionsSafeWithoutInit(t *testing.T) {
	old := defaultLogger
	defer func() { defaultLogger = old }()
	defaultLogger = nil

	assert.NotPanics(t, func() {
		Debug("no logger")
		Info("no logger")
		Warn("no logger")
		Error("no logger")
	})
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "FATAL", LevelFatal.String())
	assert.True(t, strings.HasPrefix(LogLevel(99).String(), "UNKNOWN"))
}
