// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	APIBase        string `toml:"api_base"`
	Player         string `toml:"player"`
	CacheDir       string `toml:"cache_dir"`
	LocalTTLMin    int    `toml:"local_ttl_minutes"`
	SharedTTLHours int    `toml:"shared_ttl_hours"`
	Tracking       bool   `toml:"tracking"`
	Debug          bool   `toml:"debug"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		APIBase:        "https://zeldvorik.ru/apiv3/api.php",
		Player:         "mpv",
		CacheDir:       "",
		LocalTTLMin:    15,
		SharedTTLHours: 4,
		Tracking:       true,
		Debug:          false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "katalog"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "katalog"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	if c.APIBase == "" {
		return fmt.Errorf("api_base cannot be empty")
	}
	if !strings.HasPrefix(c.APIBase, "https://") {
		return fmt.Errorf("api_base must be an HTTPS URL, got %q", c.APIBase)
	}

	if c.LocalTTLMin <= 0 {
		return fmt.Errorf("local_ttl_minutes must be positive, got %d", c.LocalTTLMin)
	}
	if c.SharedTTLHours <= 0 {
		return fmt.Errorf("shared_ttl_hours must be positive, got %d", c.SharedTTLHours)
	}

	return nil
}

// CachePath returns the path to the shared cache database, creating the
// parent directory if needed. The cache_dir setting overrides the
// XDG data dir default.
func (c *Config) CachePath() (string, error) {
	dir := c.CacheDir
	if dir == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("getting home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		dir = filepath.Join(dataDir, "katalog")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return filepath.Join(dir, "cache.db"), nil
}
