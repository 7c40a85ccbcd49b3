package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, toml string) (*cobra.Command, *ServerCmdConfig) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(toml), 0644))

	var cfg ServerCmdConfig
	cmd := &cobra.Command{Use: "test"}
	AddCommonFlags(cmd.Flags(), &cfg)
	require.NoError(t, cmd.Flags().Set("config", configPath))

	return cmd, &cfg
}

func TestLoadDefaults(t *testing.T) {
	cmd, cfg := newTestCommand(t, "")

	loader := NewConfigLoader()
	require.NoError(t, loader.InitializeConfig(cmd))
	require.NoError(t, loader.Load(cfg))

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.GracefulShutdown)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*1024*1024, cfg.Cache.MaxSize)
	assert.Equal(t, true, cfg.DB.Pool.Enable)
	assert.Equal(t, 25, cfg.DB.Pool.MaxOpenConnections)
	assert.Equal(t, true, cfg.CronJobs.Enable)
	assert.Equal(t, time.Hour, cfg.CronJobs.TrashPurgeInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.CronJobs.TrashRetention)
	assert.Equal(t, "drive", cfg.Blob.Bucket)
}

func TestLoadFromFile(t *testing.T) {
	cmd, cfg := newTestCommand(t, `
[server]
port = 9090

[jwt]
secret = "file-secret"
session-time = "7d"

[cronjobs]
trash-retention = "14d"
`)

	loader := NewConfigLoader()
	require.NoError(t, loader.InitializeConfig(cmd))
	require.NoError(t, loader.Load(cfg))

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.SessionTime)
	assert.Equal(t, 14*24*time.Hour, cfg.CronJobs.TrashRetention)
}

func TestValidate(t *testing.T) {
	cfg := &ServerCmdConfig{}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "secret"
	assert.Error(t, cfg.Validate())

	cfg.DB.DataSource = "postgres://localhost/concave"
	assert.NoError(t, cfg.Validate())
}
