// Package config provides YAML-based configuration loading for the 2048
// game: board modes, rule parameters and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Modes   []ModeConfig `yaml:"modes"`
	Rules   RulesConfig  `yaml:"rules"`
	Presets PresetConfig `yaml:"presets"`
}

// ModeConfig defines one board setup.
type ModeConfig struct {
	ID         string `yaml:"id"`          // "4x4", "5x5", ...
	Size       int    `yaml:"size"`        // Grid dimension
	StartTiles int    `yaml:"start_tiles"` // Tiles placed on reset
}

// RulesConfig defines the engine rule parameters.
type RulesConfig struct {
	WinTile         int     `yaml:"win_tile"`
	Spawn4          float64 `yaml:"spawn4_probability"` // Probability of spawning 4 instead of 2 (0.0-1.0)
	HistoryCapacity int     `yaml:"history_capacity"`   // Undo depth
}

// PresetConfig maps each difficulty preset to its spawn4 probability.
type PresetConfig struct {
	Easy   float64 `yaml:"easy"`
	Normal float64 `yaml:"normal"`
	Hard   float64 `yaml:"hard"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Sizes returns the grid dimensions of all configured modes.
func (c T2048Config) Sizes() []int {
	sizes := make([]int, 0, len(c.Modes))
	for _, m := range c.Modes {
		sizes = append(sizes, m.Size)
	}
	return sizes
}

// Mode returns the mode with the given ID.
func (c T2048Config) Mode(id string) (ModeConfig, bool) {
	for _, m := range c.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return ModeConfig{}, false
}

// Validate checks that every value is playable.
func (c T2048Config) Validate() error {
	var errs []error

	if len(c.Modes) == 0 {
		errs = append(errs, errors.New("no modes defined"))
	}
	for _, m := range c.Modes {
		if m.Size < 2 {
			errs = append(errs, fmt.Errorf("mode %q: size %d is below 2", m.ID, m.Size))
		}
		if m.StartTiles < 0 {
			errs = append(errs, fmt.Errorf("mode %q: negative start_tiles", m.ID))
		}
	}

	if w := c.Rules.WinTile; w < 4 || w&(w-1) != 0 {
		errs = append(errs, fmt.Errorf("win_tile %d is not a power of two >= 4", w))
	}
	if p := c.Rules.Spawn4; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("spawn4_probability %v outside [0, 1]", p))
	}
	if c.Rules.HistoryCapacity < 1 {
		errs = append(errs, fmt.Errorf("history_capacity %d is below 1", c.Rules.HistoryCapacity))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
