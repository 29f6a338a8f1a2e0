// Package config loads editor settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds user-tunable editor settings.
type Config struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// Theme selects the highlight color scheme.
	Theme string `toml:"theme"`

	// ShowWhitespace renders tabs and trailing spaces visibly.
	ShowWhitespace bool `toml:"show_whitespace"`

	// ScrollMargin keeps the cursor this many lines away from the
	// window edge while scrolling.
	ScrollMargin int `toml:"scroll_margin"`

	// LogLevel is one of debug, info, warn, error, off.
	LogLevel string `toml:"log_level"`

	// LogFile is where the log is written. Empty disables logging.
	LogFile string `toml:"log_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth: 4,
		Theme:    "default",
		LogLevel: "info",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ted", "config.toml")
}

// Load reads the config file at path, applying defaults for unset
// fields. A missing file yields the defaults; a malformed file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize clamps out-of-range values instead of rejecting them.
func (c *Config) normalize() {
	if c.TabWidth < 1 {
		c.TabWidth = 1
	}
	if c.TabWidth > 16 {
		c.TabWidth = 16
	}
	if c.ScrollMargin < 0 {
		c.ScrollMargin = 0
	}
	if c.ScrollMargin > 10 {
		c.ScrollMargin = 10
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		c.LogLevel = "info"
	}
}
