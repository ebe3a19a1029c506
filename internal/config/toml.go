// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/heropick/internal/logging"
	"github.com/verte-zerg/heropick/internal/model"
	"github.com/verte-zerg/heropick/internal/picker"
)

// ErrInvalid marks a config value that cannot be used.
var ErrInvalid = errors.New("invalid config")

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Picker PickerConfig `toml:"picker"`
}

// PickerConfig maps picker-related settings.
type PickerConfig struct {
	Speed    *string `toml:"speed"`
	NoRepeat *bool   `toml:"no-repeat"`
	Filter   *string `toml:"filter"`
	Roster   *string `toml:"roster"`
	DB       *string `toml:"db"`
	LogLevel *string `toml:"log-level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks a resolved config.
func Validate(cfg model.Config) error {
	if !cfg.Speed.Valid() {
		return fmt.Errorf("%w: unknown speed %q", ErrInvalid, cfg.Speed)
	}
	if _, err := picker.ParseFilter(cfg.Filter); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.LogLevel)
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("%w: db path is empty", ErrInvalid)
	}
	return nil
}

// DefaultTemplate is written by `heropick config` when no file exists.
const DefaultTemplate = `# heropick configuration
# CLI flags override values set here.

[picker]
# Animation speed: fast, normal or slow.
# speed = "normal"

# Never repeat a hero until the pool is exhausted.
# no-repeat = false

# Starting filter: all, tank, dps or healer.
# filter = "all"

# Custom roster TOML with tank, dps and healer arrays.
# roster = "~/.config/heropick/roster.toml"

# SQLite database for saved state and the pick log.
# db = "~/.local/share/heropick/heropick.db"

# Log level: debug, info, warn or error.
# log-level = "info"
`
