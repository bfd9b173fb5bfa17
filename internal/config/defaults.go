package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the built-in 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Modes: []ModeConfig{
			{ID: "4x4", Size: 4, StartTiles: 2},
			{ID: "5x5", Size: 5, StartTiles: 3},
			{ID: "6x6", Size: 6, StartTiles: 4},
		},
		Rules: RulesConfig{
			WinTile:         2048,
			Spawn4:          0.10,
			HistoryCapacity: 10,
		},
		Presets: PresetConfig{
			Easy:   0.05,
			Normal: 0.10,
			Hard:   0.25,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
