// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/doify/config.yml.
type Config struct {
	Mailto         string  `yaml:"mailto,omitempty"`
	APIURL         string  `yaml:"api_url,omitempty"`
	MatchThreshold float64 `yaml:"match_threshold,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "doify"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/doify/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	configCache = &cfg
	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Mailto returns the CrossRef polite-pool contact address.
// The DOIFY_MAILTO environment variable wins over the config file.
func Mailto() string {
	if v := os.Getenv("DOIFY_MAILTO"); v != "" {
		return v
	}
	cfg, _ := Load()
	return cfg.Mailto
}

// APIURL returns the CrossRef API base URL.
// The DOIFY_API_URL environment variable wins over the config file.
func APIURL() string {
	if v := os.Getenv("DOIFY_API_URL"); v != "" {
		return v
	}
	cfg, _ := Load()
	return cfg.APIURL
}

// MatchThreshold returns the author-similarity acceptance threshold,
// defaulting to 0.8.
func MatchThreshold() float64 {
	cfg, _ := Load()
	if cfg.MatchThreshold > 0 {
		return cfg.MatchThreshold
	}
	return 0.8
}

// Timeout returns the HTTP client timeout, defaulting to 30 seconds.
func Timeout() time.Duration {
	cfg, _ := Load()
	if cfg.TimeoutSeconds > 0 {
		return time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}
