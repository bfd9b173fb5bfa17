package t2048

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Game adapts an Engine to the arcade platform: it turns input frames into
// engine calls, keeps the game clock and draws the board.
type Game struct {
	mode   Mode
	engine *Engine
	rng    *rand.Rand

	tick      uint64
	playTicks uint64 // Ticks spent playing, drives the game clock
	tickRate  int
	bestScore int

	screenW int
	screenH int

	paused          bool
	tooSmall        bool
	winAcknowledged bool // Player chose to keep playing after the win overlay
}

// Package-level config shared by all game instances.
var gameConfig = config.DefaultT2048Config()

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.T2048Config) {
	gameConfig = cfg
}

// GetConfig returns the configuration games are created with.
func GetConfig() config.T2048Config {
	return gameConfig
}

// New creates a 2048 game for the given mode.
func New(mode Mode) *Game {
	return &Game{mode: mode}
}

func init() {
	for _, m := range Modes {
		mode := m.Mode
		registry.Register(mode.GameID(), func() registry.Game {
			return New(mode)
		})
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.mode.GameID()
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == Mode4x4 {
		return "2048"
	}
	return "2048 (" + string(g.mode) + ")"
}

// Mode returns the board setup of this game.
func (g *Game) Mode() Mode {
	return g.mode
}

// Engine exposes the underlying engine for hosts that need direct access.
func (g *Game) Engine() *Engine {
	return g.engine
}

// SetBestScore seeds the persisted best score shown in the HUD.
func (g *Game) SetBestScore(best int) {
	g.bestScore = best
	if g.engine != nil {
		g.engine.SetBestScore(best)
	}
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.playTicks = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.winAcknowledged = false

	// Keep the best score across restarts within a session
	if g.engine != nil {
		g.bestScore = max(g.bestScore, g.engine.BestScore())
	}

	rules := Rules{
		Sizes:           gameConfig.Sizes(),
		WinTile:         gameConfig.Rules.WinTile,
		Spawn4Prob:      gameConfig.Rules.Spawn4,
		HistoryCapacity: gameConfig.Rules.HistoryCapacity,
	}
	g.engine = NewEngine(rules, g.rng)

	size, startTiles := g.modeSetup()
	if err := g.engine.Reset(size, startTiles); err != nil {
		// Config does not know this mode; fall back to the built-in setup
		g.engine = NewEngine(DefaultRules(), g.rng)
		_ = g.engine.ResetMode(g.mode) //nolint:errcheck // built-in modes always reset
	}
	g.engine.SetBestScore(g.bestScore)

	g.checkScreenSize()
}

// modeSetup returns size and start tiles, preferring the loaded config.
func (g *Game) modeSetup() (size, startTiles int) {
	if mc, ok := gameConfig.Mode(string(g.mode)); ok {
		return mc.Size, mc.StartTiles
	}
	if info, ok := LookupMode(g.mode); ok {
		return info.Size, info.StartTiles
	}
	return 4, 2
}

// Resize updates the screen dimensions without restarting the game.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.engine != nil {
		g.checkScreenSize()
	}
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDimensions(g.engine.Size())
	minW := boardW + 4
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		moved := g.engine.Undo()
		return core.StepResult{State: g.State(), Moved: moved}
	}

	// Win overlay waits for the player to choose to keep playing
	if g.engine.Won() && !g.winAcknowledged {
		if in.Has(core.ActionConfirm) {
			g.winAcknowledged = true
		}
		return core.StepResult{State: g.State()}
	}

	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.playTicks++
	g.engine.SetElapsed(time.Duration(g.playTicks) * time.Second / time.Duration(g.tickRate))

	dir, ok := directionFromInput(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	result, err := g.engine.ApplyMove(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	if result.Won {
		g.winAcknowledged = false
	}

	return core.StepResult{State: g.State(), Moved: result.Moved}
}

// directionFromInput picks the move of this tick. One move per tick.
func directionFromInput(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{BestScore: g.bestScore}
	}
	return core.GameState{
		Score:     g.engine.Score(),
		BestScore: g.engine.BestScore(),
		MaxTile:   g.engine.MaxTile(),
		Moves:     g.engine.MoveCount(),
		Elapsed:   g.engine.Elapsed(),
		GameOver:  g.engine.GameOver(),
		Won:       g.engine.Won(),
		Paused:    g.paused || g.tooSmall || (g.engine.Won() && !g.winAcknowledged),
	}
}
