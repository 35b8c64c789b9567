package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
database:
  driver: mysql
  host: db.internal
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	// 未出现在文件中的字段保留默认值
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, "X-Forwarded-User", cfg.Identity.Header)
	assert.Equal(t, "app.snowflake.com", cfg.Deeplink.Host)
	assert.Equal(t, 10, cfg.QRCode.ModuleSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  password: from-file
`)
	t.Setenv("DEEPLINK_DB_PASSWORD", "from-env")
	t.Setenv("DEEPLINK_PORT", "7000")
	t.Setenv("DEEPLINK_REDIS_PORT", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 6379, cfg.Cache.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}
