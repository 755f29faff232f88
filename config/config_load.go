package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the TOML config file at path, overlays it over the defaults,
// resolves relative paths and validates the result.
//
// Relative paths resolve against the anchor, which defaults to the config
// file's directory. The not-found page is special: it resolves inside the
// public directory, since it is itself public content.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to resolve config path '%s': %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config file '%s': %w", absPath, err)
	}

	cfg := NewDefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal TOML from '%s': %w", absPath, err)
	}

	anchor := cfg.Paths.Anchor
	if anchor == "" {
		anchor = filepath.Dir(absPath)
	}
	cfg.Paths.Anchor = anchor
	cfg.Paths.Public = resolvePath(anchor, cfg.Paths.Public)
	cfg.Paths.NotFound = resolvePath(cfg.Paths.Public, cfg.Paths.NotFound)
	cfg.Paths.Bullshit = resolvePath(anchor, cfg.Paths.Bullshit)
	cfg.Paths.Blocklist = resolvePath(anchor, cfg.Paths.Blocklist)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
