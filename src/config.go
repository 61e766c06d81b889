package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"

	"github.com/plusk0/periodic-table/src/periodic"
)

// Config holds the settings read from the config file. Command line flags
// override it.
type Config struct {
	DBPath       string  `json:"db_path" toml:"db_path"`
	DebounceMS   int     `json:"debounce_ms" toml:"debounce_ms"`
	IDFormat     string  `json:"id_format" toml:"id_format"`
	DialogWidth  float32 `json:"dialog_width" toml:"dialog_width"`
	WindowWidth  float32 `json:"window_width" toml:"window_width"`
	WindowHeight float32 `json:"window_height" toml:"window_height"`
	LogLevel     string  `json:"log_level" toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		DBPath:       "./data.db",
		DebounceMS:   int(periodic.DefaultFilterDelay / time.Millisecond),
		IDFormat:     "uuid",
		DialogWidth:  periodic.DialogWidth,
		WindowWidth:  900,
		WindowHeight: 640,
		LogLevel:     "info",
	}
}

// DebounceDelay is the filter quiet period.
func (c Config) DebounceDelay() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// loadConfig reads path on top of the defaults. The format follows the
// extension: .toml is TOML, anything else is JSON (comments allowed).
// A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(b), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(b), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg.normalize()
}

// normalize fills zero values with defaults and rejects values that cannot
// work.
func (c Config) normalize() (Config, error) {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.DebounceMS < 0 {
		return c, fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if c.DialogWidth <= 0 {
		c.DialogWidth = def.DialogWidth
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth, c.WindowHeight = def.WindowWidth, def.WindowHeight
	}
	c.IDFormat = strings.ToLower(c.IDFormat)
	if _, err := periodic.NewIDGenerator(c.IDFormat); err != nil {
		return c, err
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return c, err
	}
	return c, nil
}
