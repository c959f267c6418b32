package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  addr: ":9090"
database:
  path: /tmp/tco.db
tco:
  default_months: 6
refresh:
  enabled: true
  interval: 30m
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Addr)
		assert.Equal(t, "/tmp/tco.db", cfg.Database.Path)
		assert.Equal(t, 6, cfg.TCO.DefaultMonths)
		assert.True(t, cfg.Refresh.Enabled)
		assert.Equal(t, 30*time.Minute, cfg.Refresh.Interval)
	})

	t.Run("defaults applied", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  addr: ":9090"
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "tco-atlas.db", cfg.Database.Path)
		assert.Equal(t, 12, cfg.TCO.DefaultMonths)
		assert.False(t, cfg.Refresh.Enabled)
	})

	t.Run("invalid default months", func(t *testing.T) {
		path := writeConfigFile(t, `
tco:
  default_months: -3
`)

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
