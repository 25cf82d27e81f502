package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "session.log")

	logger, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Info("interval tick", zap.String("component", "test"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"interval tick"`)
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(Options{Level: "warn", Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, logger.Level.Level())
}

func TestSetLevel(t *testing.T) {
	level := zap.NewAtomicLevel()

	require.NoError(t, SetLevel(level, "error"))
	assert.Equal(t, zapcore.ErrorLevel, level.Level())

	require.NoError(t, SetLevel(level, ""))
	assert.Equal(t, zapcore.InfoLevel, level.Level())

	assert.Error(t, SetLevel(level, "loud"))
}
