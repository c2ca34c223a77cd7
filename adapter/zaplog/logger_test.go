package zaplog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core))

	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg", "path", "abra.cadabra")
	logger.Error("error msg", "error", "boom")

	entries := logs.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "debug msg", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)

	fields := entries[2].ContextMap()
	assert.Equal(t, "abra.cadabra", fields["path"])
}

func TestZapLoggerWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := New(zap.New(core))

	child := logger.With("component", "store")
	child.Info("hello")
	logger.Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "store", entries[0].ContextMap()["component"])
	_, hasComponent := entries[1].ContextMap()["component"]
	assert.False(t, hasComponent, "With must not modify the original logger")
}
