package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds demo settings. Defaults apply first; a config file, when
// present, overlays them
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Agents int `yaml:"agents"`
	TickMs int `yaml:"tick_ms"`

	// Maze selects the maze generator; false scatters rectangular blocks
	Maze     bool   `yaml:"maze"`
	Braiding int    `yaml:"braiding"`
	Seed     uint64 `yaml:"seed"`
}

func defaultConfig() Config {
	return Config{
		Width:    120,
		Height:   40,
		Agents:   12,
		TickMs:   33,
		Maze:     false,
		Braiding: 400,
		Seed:     1,
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Width < 20 || cfg.Height < 20 {
		return cfg, fmt.Errorf("map %dx%d too small, minimum 20x20", cfg.Width, cfg.Height)
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 33
	}
	return cfg, nil
}
