package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

func TestParseModeArg(t *testing.T) {
	tests := []struct {
		args    []string
		want    t2048.Mode
		wantErr bool
	}{
		{nil, t2048.Mode4x4, false},
		{[]string{"5x5"}, t2048.Mode5x5, false},
		{[]string{"6"}, t2048.Mode6x6, false},
		{[]string{"2048_5x5"}, t2048.Mode5x5, false},
		{[]string{"3x3"}, "", true},
	}

	for _, tt := range tests {
		got, err := parseModeArg(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseModeArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseModeArg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"127.0.0.1:2222": "2222",
		"nonsense":       "nonsense",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestLoadGameConfig(t *testing.T) {
	saved := t2048.GetConfig()
	t.Cleanup(func() {
		t2048.SetConfig(saved)
		flagConfig = ""
		flagDifficulty = ""
	})

	path := filepath.Join(t.TempDir(), "t2048.yaml")
	yaml := "rules:\n  win_tile: 1024\npresets:\n  hard: 0.5\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	flagConfig = path
	flagDifficulty = "hard"
	if err := loadGameConfig(nil, nil); err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}

	cfg := t2048.GetConfig()
	if cfg.Rules.WinTile != 1024 {
		t.Errorf("WinTile = %d, want 1024", cfg.Rules.WinTile)
	}
	if cfg.Rules.Spawn4 != 0.5 {
		t.Errorf("Spawn4 = %v, want 0.5", cfg.Rules.Spawn4)
	}

	flagDifficulty = "impossible"
	if err := loadGameConfig(nil, nil); err == nil {
		t.Error("loadGameConfig() accepted an unknown difficulty")
	}
}
