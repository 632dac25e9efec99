// Package config loads runtime configuration for fragbot. Values come from
// defaults, then an optional YAML file, then FRAGBOT_* environment
// variables, with later sources winning.
package config

import (
	"fmt"
	"os"

	"github.com/mstoykov/envconfig"
	"gopkg.in/yaml.v3"

	"fragbot/pkg/fragment"
)

// Config holds everything the process needs to run.
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required.
	BotToken string `yaml:"bot_token" envconfig:"FRAGBOT_TOKEN"`

	// Headless controls whether Chromium runs without a visible window.
	Headless bool `yaml:"headless" envconfig:"FRAGBOT_HEADLESS"`

	// UserDataDir is the Chromium profile directory. Keeping it across
	// restarts preserves the fragment.com login session.
	UserDataDir string `yaml:"user_data_dir" envconfig:"FRAGBOT_USER_DATA_DIR"`

	// EntryURL is the page the session opens on.
	EntryURL string `yaml:"entry_url" envconfig:"FRAGBOT_ENTRY_URL"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level" envconfig:"FRAGBOT_LOG_LEVEL"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Headless:    true,
		UserDataDir: "playwright_user_data",
		EntryURL:    fragment.EntryURL,
		LogLevel:    "info",
	}
}

// Load builds the effective configuration. path may be empty; a missing
// file at a non-empty path is an error, since the user asked for it.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is runnable.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token is required (set bot_token or FRAGBOT_TOKEN)")
	}
	if c.EntryURL == "" {
		return fmt.Errorf("entry URL must not be empty")
	}
	return nil
}
