package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
postgres:
  dsn: "postgres://x"
telegram:
  token: "abc"
  admin_chat_id: 42
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "INR", c.App.Currency)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, "postgres://x", c.Postgres.DSN)
	assert.Equal(t, int64(42), c.Telegram.AdminChatID)
	assert.Equal(t, 30*time.Second, c.Redis.TTL)
	assert.Equal(t, "15", c.Production.HourlyRate)
	assert.True(t, c.TelegramEnabled())
	assert.False(t, c.RedisEnabled())
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9000\"\n")
	t.Setenv("APP_HTTP_ADDR", ":7070")
	t.Setenv("APP_PRODUCTION_HOURLY_RATE", "20.5")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", c.HTTP.Addr)
	assert.Equal(t, "20.5", c.Production.HourlyRate)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
