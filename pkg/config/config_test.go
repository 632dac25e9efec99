package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fragbot/pkg/fragment"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.True(t, cfg.Headless)
	assert.Equal(t, "playwright_user_data", cfg.UserDataDir)
	assert.Equal(t, fragment.EntryURL, cfg.EntryURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BotToken)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().UserDataDir, cfg.UserDataDir)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragbot.yaml")
	content := `
bot_token: "123:abc"
headless: false
user_data_dir: /var/lib/fragbot/profile
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.False(t, cfg.Headless)
	assert.Equal(t, "/var/lib/fragbot/profile", cfg.UserDataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, fragment.EntryURL, cfg.EntryURL)
}

func TestLoadEnvironmentWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bot_token: from-file\n"), 0o600))

	t.Setenv("FRAGBOT_TOKEN", "from-env")
	t.Setenv("FRAGBOT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.BotToken)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bot_token: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.Error(t, cfg.Validate(), "missing token must fail")

	cfg.BotToken = "123:abc"
	assert.NoError(t, cfg.Validate())

	cfg.EntryURL = ""
	assert.Error(t, cfg.Validate())
}
