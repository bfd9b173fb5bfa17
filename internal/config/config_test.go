package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}

	want := DefaultT2048Config()
	if len(cfg.Modes) != len(want.Modes) {
		t.Fatalf("embedded modes = %d, want %d", len(cfg.Modes), len(want.Modes))
	}
	for i := range want.Modes {
		if cfg.Modes[i] != want.Modes[i] {
			t.Errorf("mode %d = %+v, want %+v", i, cfg.Modes[i], want.Modes[i])
		}
	}
	if cfg.Rules != want.Rules {
		t.Errorf("rules = %+v, want %+v", cfg.Rules, want.Rules)
	}
	if cfg.Presets != want.Presets {
		t.Errorf("presets = %+v, want %+v", cfg.Presets, want.Presets)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("rules:\n  spawn4_probability: 0.5\n  history_capacity: 3\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadT2048(path)
	if err != nil {
		t.Fatalf("LoadT2048() failed: %v", err)
	}
	if cfg.Rules.Spawn4 != 0.5 {
		t.Errorf("Spawn4 = %v, want 0.5", cfg.Rules.Spawn4)
	}
	if cfg.Rules.HistoryCapacity != 3 {
		t.Errorf("HistoryCapacity = %d, want 3", cfg.Rules.HistoryCapacity)
	}
	// Unset keys keep defaults
	if cfg.Rules.WinTile != 2048 {
		t.Errorf("WinTile = %d, want default 2048", cfg.Rules.WinTile)
	}
	if len(cfg.Modes) != 3 {
		t.Errorf("Modes = %d, want default 3", len(cfg.Modes))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadT2048(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadT2048() should fail for a missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  win_tile: 1000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadT2048(path)
	if err == nil {
		t.Fatal("LoadT2048() should reject a non power of two win tile")
	}
	if !strings.Contains(err.Error(), "win_tile") {
		t.Errorf("error %q should mention win_tile", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*T2048Config)
		ok     bool
	}{
		{"defaults", func(*T2048Config) {}, true},
		{"no modes", func(c *T2048Config) { c.Modes = nil }, false},
		{"tiny board", func(c *T2048Config) { c.Modes[0].Size = 1 }, false},
		{"negative start tiles", func(c *T2048Config) { c.Modes[1].StartTiles = -1 }, false},
		{"spawn4 above one", func(c *T2048Config) { c.Rules.Spawn4 = 1.5 }, false},
		{"zero history", func(c *T2048Config) { c.Rules.HistoryCapacity = 0 }, false},
		{"win tile 4096", func(c *T2048Config) { c.Rules.WinTile = 4096 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		want   float64
	}{
		{DifficultyEasy, 0.05},
		{DifficultyNormal, 0.10},
		{DifficultyHard, 0.25},
		{DifficultyFixed, 0.10},
		{"", 0.10},
	}

	for _, tt := range tests {
		cfg := DefaultT2048Config()
		ApplyT2048Preset(&cfg, tt.preset)
		if cfg.Rules.Spawn4 != tt.want {
			t.Errorf("preset %q: Spawn4 = %v, want %v", tt.preset, cfg.Rules.Spawn4, tt.want)
		}
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset() should reject unknown presets")
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
}

func TestModeLookup(t *testing.T) {
	cfg := DefaultT2048Config()
	m, ok := cfg.Mode("5x5")
	if !ok || m.Size != 5 || m.StartTiles != 3 {
		t.Errorf("Mode(5x5) = %+v, %v", m, ok)
	}
	if _, ok := cfg.Mode("7x7"); ok {
		t.Error("Mode(7x7) should not exist")
	}
	sizes := cfg.Sizes()
	if len(sizes) != 3 || sizes[0] != 4 || sizes[2] != 6 {
		t.Errorf("Sizes() = %v", sizes)
	}
}
