package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "platform", cfg.LineEnding)
	assert.Equal(t, "auto", cfg.Compression)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.LineTerminator())
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "tdif.yaml", `
line_ending: crlf
compression: xz
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "\r\n", cfg.LineTerminator())
	assert.Equal(t, "xz", cfg.Compression)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "bad.yaml", "line_ending: [lf"))
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("Unknown line ending", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "bad.yaml", "line_ending: cr\n"))
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("Unknown compression", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "bad.yaml", "compression: zip\n"))
		assert.ErrorContains(t, err, "invalid config")
	})
}
