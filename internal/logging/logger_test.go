package logging

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitializeWritesToFile(t *testing.T) {
	require.NoError(t, Initialize(t.TempDir(), zapcore.InfoLevel))
	path := GetLogPath()
	require.NotEmpty(t, path)

	L().Info("search complete", zap.Int("matches", 3))
	L().Debug("hidden")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"msg":"search complete"`)
	assert.Contains(t, content, `"matches":3`)
	assert.NotContains(t, content, "hidden")
	assert.Empty(t, GetLogPath())
}

func TestLBeforeInitializeIsNop(t *testing.T) {
	require.NoError(t, Close())
	assert.NotPanics(t, func() { L().Info("dropped") })
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
