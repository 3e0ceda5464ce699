// Package config loads editor settings from an optional YAML file and the
// environment. Environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/sotftools/engine/npc"
)

// Config holds editor settings.
type Config struct {
	// SaveDir is the slot opened when none is given on the command line.
	SaveDir        string  `yaml:"save_dir" env:"SOTF_SAVE_DIR"`
	KelvinHealth   float32 `yaml:"kelvin_health" env:"SOTF_KELVIN_HEALTH"`
	VirginiaHealth float32 `yaml:"virginia_health" env:"SOTF_VIRGINIA_HEALTH"`
	Trace          bool    `yaml:"trace" env:"SOTF_TRACE"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		KelvinHealth:   100,
		VirginiaHealth: 120,
	}
}

// Path returns the config file location: $SOTF_CONFIG, or
// ~/.sotftools/config.yaml.
func Path() string {
	if p := os.Getenv("SOTF_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sotftools", "config.yaml")
}

// Load reads the file at path (a missing file is fine) and then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := npc.ValidateHealth(c.KelvinHealth); err != nil {
		return fmt.Errorf("kelvin_health: %w", err)
	}
	if err := npc.ValidateHealth(c.VirginiaHealth); err != nil {
		return fmt.Errorf("virginia_health: %w", err)
	}
	return nil
}

// RevivalHealth returns the per-character revival health overrides keyed by
// actor type id.
func (c Config) RevivalHealth() map[uint32]float32 {
	return map[uint32]float32{
		npc.KelvinTypeID:   c.KelvinHealth,
		npc.VirginiaTypeID: c.VirginiaHealth,
	}
}
