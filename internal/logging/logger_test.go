package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recordkit/schemac/internal/config"
)

func newBufferLogger(level, format string) (*Logger, *bytes.Buffer) {
	logger := NewLogger(config.LoggingConfig{Level: level, Format: format, Output: "stderr"})
	buf := &bytes.Buffer{}
	logger.output = buf

	return logger, buf
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("warn", "text")

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func TestTextFormat(t *testing.T) {
	logger, buf := newBufferLogger("info", "text")

	logger.WithField("collection", "posts").Info("compiled")

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "compiled")
	assert.Contains(t, out, "collection=posts")
}

func TestJSONFormat(t *testing.T) {
	logger, buf := newBufferLogger("info", "json")

	logger.WithError(errors.New("boom")).ErrorWithErr("apply failed", errors.New("boom"))

	var entry LogEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "apply failed", entry.Message)
	assert.Equal(t, "boom", entry.Error)
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger("info", "text")

	child := logger.WithField("table", "posts")
	child.output = buf

	logger.Info("parent message")

	assert.NotContains(t, buf.String(), "table=posts")
}

func TestParseLogLevelFallback(t *testing.T) {
	assert.Equal(t, InfoLevel, parseLogLevel("bogus"))
	assert.Equal(t, WarnLevel, parseLogLevel("warning"))
}
