package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := newDefault()

	assert.Equal(t, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", cfg.USDTContract)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, int64(500_000), cfg.TrialBonus)
	assert.Equal(t, 10, cfg.MonitorIntervalSeconds)
	assert.Equal(t, 15, cfg.DepositExpiryMinutes)
	assert.Equal(t, 12, cfg.PacketRefundHours)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
bot_token: file-token
deposit_wallet: TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG
admin_password: hunter2
monitor_interval_seconds: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	t.Setenv("BAOBAO_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.BotToken)
	assert.Equal(t, "hunter2", cfg.AdminPassword)
	assert.Equal(t, 30, cfg.MonitorIntervalSeconds)
	// Untouched fields keep defaults.
	assert.Equal(t, 15, cfg.DepositExpiryMinutes)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	content := "bot_token: file-token\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	t.Setenv("BAOBAO_CONFIG_PATH", dir)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("ADMIN_ID", "123456")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.BotToken)
	assert.Equal(t, int64(123456), cfg.AdminChatID)
}

func TestWatchEnabled(t *testing.T) {
	cfg := newDefault()
	assert.False(t, cfg.WatchEnabled())

	cfg.DepositWallet = "short"
	assert.False(t, cfg.WatchEnabled())

	cfg.DepositWallet = "TEhcSVUBxrXmAwQKKhruae1PLE8S8Ja7dG"
	assert.True(t, cfg.WatchEnabled())
}
