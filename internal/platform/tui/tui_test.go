package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		gameOver bool
		want     core.Action
		quit     bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, false, core.ActionUp, false},
		{"wasd left", runeKey("a"), false, core.ActionLeft, false},
		{"vim down", runeKey("j"), false, core.ActionDown, false},
		{"vim right", runeKey("l"), false, core.ActionRight, false},
		{"undo", runeKey("u"), false, core.ActionUndo, false},
		{"undo ctrl+z", tea.KeyMsg{Type: tea.KeyCtrlZ}, false, core.ActionUndo, false},
		{"pause", runeKey("p"), false, core.ActionPause, false},
		{"keep playing", tea.KeyMsg{Type: tea.KeyEnter}, false, core.ActionConfirm, false},
		{"r while playing", runeKey("r"), false, core.ActionNone, false},
		{"r after game over", runeKey("r"), true, core.ActionRestart, false},
		{"ctrl+r any time", tea.KeyMsg{Type: tea.KeyCtrlR}, false, core.ActionRestart, false},
		{"quit", runeKey("q"), false, core.ActionQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg, tt.gameOver)
			if got != tt.want || quit != tt.quit {
				t.Errorf("MapKey(%q) = %s, %v; want %s, %v", tt.msg.String(), got, quit, tt.want, tt.quit)
			}
		})
	}
}

func newTestGameModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	game, err := registry.Create("2048")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 99})
	m.Init()
	return m
}

// press sends a key and then a tick so the action is applied.
func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	next, _ = next.(Model).Update(TickMsg{})
	return next.(Model)
}

func TestModelRecordsScoreOnQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	m := newTestGameModel(t, store)

	keys := []tea.KeyMsg{
		{Type: tea.KeyLeft}, {Type: tea.KeyUp}, {Type: tea.KeyRight}, {Type: tea.KeyDown},
	}
	for i := 0; i < 400 && m.State().Score == 0; i++ {
		m = press(m, keys[i%len(keys)])
	}
	score := m.State().Score
	if score == 0 {
		t.Fatal("no merge happened")
	}

	next, cmd := m.Update(runeKey("q"))
	if cmd == nil || !next.(Model).IsQuitting() {
		t.Fatal("q should quit")
	}

	entries, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 1 || entries[0].Score != score {
		t.Errorf("stored entries = %+v, want one with score %d", entries, score)
	}
}

func TestModelPauseAndUndo(t *testing.T) {
	m := newTestGameModel(t, nil)

	m = press(m, runeKey("p"))
	if !m.State().Paused {
		t.Fatal("p should pause")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.State().Moves != 0 {
		t.Error("moves applied while paused")
	}

	m = press(m, runeKey("p"))
	for i := 0; i < 10 && m.State().Moves == 0; i++ {
		m = press(m, []tea.KeyMsg{{Type: tea.KeyLeft}, {Type: tea.KeyRight}}[i%2])
	}
	if m.State().Moves != 1 {
		t.Fatalf("Moves = %d, want 1", m.State().Moves)
	}

	m = press(m, runeKey("u"))
	if m.State().Moves != 0 {
		t.Errorf("Moves after undo = %d, want 0", m.State().Moves)
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	if len(m.items) != 3 {
		t.Fatalf("menu items = %d, want 3", len(m.items))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.GameID != "2048_5x5" {
		t.Fatalf("Selected() = %+v, want 2048_5x5", sel)
	}

	m = NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}
}

func TestSessionFlow(t *testing.T) {
	var s tea.Model = NewSessionModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60}, "tester")
	if !strings.Contains(s.View(), "playing as tester") {
		t.Error("menu should greet the SSH user")
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.(SessionModel).screen != screenGame {
		t.Fatal("enter should start a game")
	}

	s, _ = s.Update(runeKey("p"))
	s, _ = s.Update(TickMsg{})
	s, _ = s.Update(runeKey("b"))
	if s.(SessionModel).screen != screenMenu {
		t.Fatal("b while paused should return to the menu")
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	if s.(SessionModel).screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.(SessionModel).screen != screenMenu {
		t.Error("esc should leave the scoreboard")
	}
}
