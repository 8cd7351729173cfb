// Package config provides XDG path helpers, TOML parsing and .env loading.
package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "TEXTMOOD_CONFIG"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "textmood", "config.toml")
}

// ConfigPath returns $TEXTMOOD_CONFIG when set, otherwise DefaultConfigPath.
func ConfigPath() string {
	if v := os.Getenv(ConfigEnvVar); v != "" {
		return v
	}
	return DefaultConfigPath()
}
