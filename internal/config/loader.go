package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const configFileName = "config.json"

// DefaultPath returns the per-user location of the config file
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".xui-manager", configFileName), nil
}

// Load reads the configuration from the JSON file at path, with
// environment variable overrides. A missing file is not an error: the
// returned config is simply incomplete and the caller prompts for the
// missing fields. A local .env file is loaded first so overrides can be
// kept next to the binary.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	// Set default values
	v.SetDefault("verify_ssl", true)
	v.SetDefault("vless_secret_field", VlessSecretPassword)
	v.SetDefault("log_level", "info")

	// Define environment variables
	v.BindEnv("url", "XUI_URL")
	v.BindEnv("username", "XUI_USERNAME")
	v.BindEnv("password", "XUI_PASSWORD")
	v.BindEnv("verify_ssl", "XUI_VERIFY_SSL")
	v.BindEnv("vless_secret_field", "XUI_VLESS_SECRET_FIELD")
	v.BindEnv("log_level", "LOG_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		// No file yet; defaults and environment still apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg.URL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	cfg.Username = strings.TrimSpace(cfg.Username)

	return cfg, nil
}

// Save writes the configuration back to path atomically. The file holds
// credentials, so it is created user-readable only.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpFile, path)
}
