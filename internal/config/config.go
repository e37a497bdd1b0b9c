package config

import (
	xuierrors "xui-manager/internal/errors"
)

// Vless secret field targets. Which field UpdateClient rotates for a
// vless client is deliberately a configuration choice: overwriting the
// UUID changes the client's login identity, overwriting the password
// rotates a secondary secret.
const (
	VlessSecretPassword = "password"
	VlessSecretID       = "id"
)

// Config represents the application configuration
type Config struct {
	URL              string `mapstructure:"url" json:"url"`
	Username         string `mapstructure:"username" json:"username"`
	Password         string `mapstructure:"password" json:"password"`
	VerifySSL        bool   `mapstructure:"verify_ssl" json:"verify_ssl"`
	VlessSecretField string `mapstructure:"vless_secret_field" json:"vless_secret_field"`
	LogLevel         string `mapstructure:"log_level" json:"log_level"`
}

// Complete reports whether every field required to reach the panel is set
func (c *Config) Complete() bool {
	return c.URL != "" && c.Username != "" && c.Password != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.URL == "" {
		return &xuierrors.ConfigError{Field: "url", Message: "panel URL is required"}
	}
	if c.Username == "" {
		return &xuierrors.ConfigError{Field: "username", Message: "username is required"}
	}
	if c.Password == "" {
		return &xuierrors.ConfigError{Field: "password", Message: "password is required"}
	}
	if c.VlessSecretField != VlessSecretPassword && c.VlessSecretField != VlessSecretID {
		return &xuierrors.ConfigError{
			Field:   "vless_secret_field",
			Message: `must be "password" or "id"`,
		}
	}
	return nil
}
