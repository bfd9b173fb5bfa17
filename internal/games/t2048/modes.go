// Package t2048 implements the 2048 sliding-tile puzzle: a self-contained
// grid engine plus the arcade game adapter that drives it.
package t2048

import (
	"fmt"
	"strings"
)

// Mode names a board setup.
type Mode string

const (
	Mode4x4 Mode = "4x4"
	Mode5x5 Mode = "5x5"
	Mode6x6 Mode = "6x6"
)

// ModeInfo defines a board setup.
type ModeInfo struct {
	Mode       Mode
	Name       string
	Size       int // Grid dimension
	StartTiles int // Tiles placed by Reset
}

// Modes defines the board setups in menu order. Bigger boards start with
// more tiles so the opening is not empty.
var Modes = []ModeInfo{
	{Mode: Mode4x4, Name: "Classic", Size: 4, StartTiles: 2},
	{Mode: Mode5x5, Name: "Big", Size: 5, StartTiles: 3},
	{Mode: Mode6x6, Name: "Huge", Size: 6, StartTiles: 4},
}

// ModeCount returns the number of board setups.
func ModeCount() int {
	return len(Modes)
}

// LookupMode returns the setup for mode.
func LookupMode(mode Mode) (ModeInfo, bool) {
	for _, m := range Modes {
		if m.Mode == mode {
			return m, true
		}
	}
	return ModeInfo{}, false
}

// ModeForSize returns the setup with the given grid dimension.
func ModeForSize(size int) (ModeInfo, bool) {
	for _, m := range Modes {
		if m.Size == size {
			return m, true
		}
	}
	return ModeInfo{}, false
}

// ParseMode accepts "4x4", "4" or a game ID such as "2048_5x5".
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "2048_")
	if s == "" || s == "2048" {
		return Mode4x4, nil
	}
	for _, m := range Modes {
		if s == string(m.Mode) || s == fmt.Sprint(m.Size) {
			return m.Mode, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
}

// GameID returns the registry ID for the mode.
func (m Mode) GameID() string {
	if m == Mode4x4 || m == "" {
		return "2048"
	}
	return "2048_" + string(m)
}

// ModeNames returns the display labels of all setups.
func ModeNames() []string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = fmt.Sprintf("%s %s", m.Mode, m.Name)
	}
	return names
}
