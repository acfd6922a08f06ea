// Package config loads engine settings from a TOML file. Missing files are
// not an error; every field has a workable default.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Inspector InspectorConfig `toml:"inspector"`
	Logging   LoggingConfig   `toml:"logging"`
	Assets    AssetsConfig    `toml:"assets"`
}

type EngineConfig struct {
	SceneName     string  `toml:"scene_name"`
	TickRate      float64 `toml:"tick_rate"`
	FixedTickRate float64 `toml:"fixed_tick_rate"`
	DeferStart    bool    `toml:"defer_start"`
}

type InspectorConfig struct {
	Enabled          bool   `toml:"enabled"`
	Addr             string `toml:"addr"`
	SnapshotInterval string `toml:"snapshot_interval"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type AssetsConfig struct {
	SearchPaths []string `toml:"search_paths"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			SceneName:     "main",
			TickRate:      60,
			FixedTickRate: 50,
		},
		Inspector: InspectorConfig{
			Enabled:          false,
			Addr:             "127.0.0.1:8093",
			SnapshotInterval: "1s",
		},
		Logging: LoggingConfig{Level: "info"},
		Assets:  AssetsConfig{SearchPaths: []string{"assets"}},
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	if cfg.Engine.TickRate <= 0 {
		cfg.Engine.TickRate = 60
	}
	if cfg.Engine.FixedTickRate <= 0 {
		cfg.Engine.FixedTickRate = 50
	}
	return cfg, nil
}
