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
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeConfig(t, `
server:
  port: ":9000"
jwt:
  secret: "s3cret"
  ttl: 2h
game:
  seed: 42
`)
	require.NoError(t, Load(p))

	assert.Equal(t, ":9000", C.Server.Port)
	assert.Equal(t, "s3cret", C.JWT.Secret)
	assert.Equal(t, 2*time.Hour, C.JWT.TTL)
	assert.Equal(t, int64(42), C.Game.Seed)
	// 未配置的项使用默认值
	assert.Equal(t, "127.0.0.1:6379", C.Redis.Addr)
	assert.Equal(t, 300, C.Match.PlayerTTL)
	assert.Equal(t, "info", C.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeConfig(t, "jwt:\n  secret: file\n")
	t.Setenv("CARDTABLE_JWT_SECRET", "env")
	t.Setenv("CARDTABLE_REDIS_ADDR", "redis:6379")
	t.Setenv("CARDTABLE_MATCH_PLAYER_TTL", "60")

	require.NoError(t, Load(p))
	assert.Equal(t, "env", C.JWT.Secret)
	assert.Equal(t, "redis:6379", C.Redis.Addr)
	assert.Equal(t, 60, C.Match.PlayerTTL)
}

func TestLoadErrors(t *testing.T) {
	assert.Error(t, Load(filepath.Join(t.TempDir(), "missing.yaml")))

	p := writeConfig(t, "server:\n  port: \":1\"\n")
	assert.Error(t, Load(p), "missing jwt secret")
}

func TestShippedConfig(t *testing.T) {
	require.NoError(t, Load("config.yaml"))
	assert.Equal(t, ":8080", C.Server.Port)
	assert.Equal(t, 24*time.Hour, C.JWT.TTL)
}
