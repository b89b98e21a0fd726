// Package config loads the viewer's optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultTitle     = "IMF Viewer"
	defaultRetention = "720h" // 30 days of recent-open history
)

// Config holds viewer settings. Every field is optional; missing fields keep
// their defaults.
type Config struct {
	Sidecar struct {
		// Path overrides the sidecar binary lookup entirely.
		Path string `toml:"path"`
	} `toml:"sidecar"`

	Recents struct {
		Database  string `toml:"database"`
		Retention string `toml:"retention"`
	} `toml:"recents"`

	Window struct {
		Title string `toml:"title"`
	} `toml:"window"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "imf-viewer", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error; the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Recents.Retention = defaultRetention
	cfg.Window.Title = defaultTitle

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Recents.Retention == "" {
		cfg.Recents.Retention = defaultRetention
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = defaultTitle
	}
	return cfg, nil
}

// RetentionDuration parses the recents retention setting.
func (c *Config) RetentionDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Recents.Retention)
	if err != nil {
		return 0, fmt.Errorf("invalid recents retention %q: %w", c.Recents.Retention, err)
	}
	return d, nil
}
