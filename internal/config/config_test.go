package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from file", func(t *testing.T) {
		// Given: a complete config file
		path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: redis
  port: "6380"
  db: 2
cache:
  disabled: true
  ttl: 1h
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Redis.DB)
		assert.True(t, conf.Cache.Disabled)
		assert.Equal(t, time.Hour, conf.Cache.TTL)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: a config file that sets nothing
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.False(t, conf.Cache.Disabled)
		assert.Equal(t, 24*time.Hour, conf.Cache.TTL)
	})

	t.Run("Environment overrides file", func(t *testing.T) {
		// Given: a port in the file and another in the environment
		path := writeConfig(t, "http-port: \"8080\"\n")
		t.Setenv("HTTP_PORT", "7070")

		// When: loading the config
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
