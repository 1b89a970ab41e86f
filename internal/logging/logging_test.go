package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Options{Prefix: "test", Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "key", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=7")
}

func TestFromEnvWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	t.Setenv("LOG_FILE", path)
	t.Setenv("LOG_LEVEL", "debug")

	var fallback bytes.Buffer
	logger, closer, err := FromEnv("spacedodge", &fallback)
	require.NoError(t, err)

	logger.Debug("boot")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boot")
	assert.Empty(t, fallback.String())
}
