package t2048

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrInvalidArgument is returned for unsupported grid sizes, tile counts or
// direction tokens. Full boards and moves that change nothing are not errors.
var ErrInvalidArgument = errors.New("t2048: invalid argument")

// WinTile is the tile value that flags a win in the classic rules.
const WinTile = 2048

// Rand is the randomness source used to spawn tiles. *math/rand.Rand
// satisfies it; tests inject a seeded one.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Rules controls the engine parameters that vary between setups.
type Rules struct {
	Sizes           []int   // Supported grid dimensions
	WinTile         int     // Tile value that sets the won flag
	Spawn4Prob      float64 // Probability of spawning 4 instead of 2
	HistoryCapacity int     // Undo snapshots kept
}

// DefaultRules returns the classic rules: 4x4, 5x5 and 6x6 boards, a win at
// 2048, 10% fours and ten undo steps.
func DefaultRules() Rules {
	return Rules{
		Sizes:           []int{4, 5, 6},
		WinTile:         WinTile,
		Spawn4Prob:      0.10,
		HistoryCapacity: DefaultHistoryCapacity,
	}
}

// MoveResult describes the outcome of ApplyMove.
type MoveResult struct {
	Moved       bool `json:"moved"`        // Whether any tile changed
	ScoreGained int  `json:"score_gained"` // Sum of merged tile values
	Spawned     bool `json:"spawned"`      // Whether a new tile was placed
	SpawnCell   Cell `json:"spawn_cell"`   // Where the new tile landed
	Won         bool `json:"won"`          // The win flag was raised by this move
	GameOver    bool `json:"game_over"`    // The game ended with this move
}

// Engine owns the state of one 2048 game: grid, score, counters, flags and
// undo history. It is not safe for concurrent use; hosts serialize calls.
type Engine struct {
	rules Rules
	rng   Rand

	grid      Grid
	score     int
	bestScore int
	moves     int
	maxTile   int
	elapsed   time.Duration
	gameOver  bool
	won       bool

	history *History
}

// NewEngine creates an engine with the given rules and randomness source.
// Call Reset before playing.
func NewEngine(rules Rules, rng Rand) *Engine {
	if len(rules.Sizes) == 0 {
		rules.Sizes = DefaultRules().Sizes
	}
	if rules.WinTile == 0 {
		rules.WinTile = WinTile
	}
	return &Engine{
		rules:   rules,
		rng:     rng,
		history: NewHistory(rules.HistoryCapacity),
	}
}

// Rules returns the engine rules.
func (e *Engine) Rules() Rules {
	return e.rules
}

// SupportsSize reports whether size is an allowed grid dimension.
func (e *Engine) SupportsSize(size int) bool {
	return size >= 2 && slices.Contains(e.rules.Sizes, size)
}

// Reset starts a new game on an empty size x size grid with startTiles
// random tiles.
func (e *Engine) Reset(size, startTiles int) error {
	if !e.SupportsSize(size) {
		return fmt.Errorf("%w: unsupported grid size %d", ErrInvalidArgument, size)
	}
	if startTiles < 0 {
		return fmt.Errorf("%w: negative start tile count %d", ErrInvalidArgument, startTiles)
	}

	e.grid = NewGrid(size)
	e.score = 0
	e.moves = 0
	e.maxTile = 0
	e.elapsed = 0
	e.gameOver = false
	e.won = false
	e.history.Clear()

	for range startTiles {
		if !e.PlaceRandomTile() {
			break
		}
	}

	e.maxTile = e.grid.MaxTile()
	e.saveState()
	return nil
}

// ResetMode starts a new game using the size and start tiles of mode.
func (e *Engine) ResetMode(mode Mode) error {
	info, ok := LookupMode(mode)
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, string(mode))
	}
	return e.Reset(info.Size, info.StartTiles)
}

// PlaceRandomTile puts a 2 (or, rarely, a 4) on a random empty cell.
// Returns false when the grid is full.
func (e *Engine) PlaceRandomTile() bool {
	_, ok := e.placeRandomTile()
	return ok
}

func (e *Engine) placeRandomTile() (Cell, bool) {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < e.rules.Spawn4Prob {
		value = 4
	}

	e.grid[cell.Row][cell.Col] = value
	return cell, true
}

// ApplyMove slides the grid in dir. A move that changes nothing, or any
// move after game over, leaves every piece of state untouched.
func (e *Engine) ApplyMove(dir Direction) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{}, fmt.Errorf("%w: unknown direction %d", ErrInvalidArgument, int(dir))
	}
	if e.gameOver {
		return MoveResult{}, nil
	}

	gained, moved := slide(e.grid, dir)
	if !moved {
		return MoveResult{}, nil
	}

	result := MoveResult{Moved: true, ScoreGained: gained}
	result.SpawnCell, result.Spawned = e.placeRandomTile()

	e.moves++
	e.score += gained
	if e.score > e.bestScore {
		e.bestScore = e.score
	}
	e.maxTile = e.grid.MaxTile()

	wasWon := e.won
	e.checkTerminalState()
	result.Won = e.won && !wasWon
	result.GameOver = e.gameOver

	e.saveState()
	return result, nil
}

// checkTerminalState raises the won flag on the first win tile and the
// game over flag when no move is left. The two checks are independent.
func (e *Engine) checkTerminalState() {
	if !e.won && e.grid.Contains(e.rules.WinTile) {
		e.won = true
	}
	if !e.grid.CanMove() {
		e.gameOver = true
	}
}

// Undo restores the state before the last move. Both terminal flags are
// cleared even if the restored state had them set. Returns false when only
// the initial state is left.
func (e *Engine) Undo() bool {
	prev, ok := e.history.Rewind()
	if !ok {
		return false
	}

	e.grid = prev.grid.Clone()
	e.score = prev.score
	e.moves = prev.moves
	e.maxTile = prev.maxTile
	e.elapsed = prev.elapsed
	e.gameOver = false
	e.won = false
	return true
}

// saveState pushes a deep copy of the live state onto the history.
func (e *Engine) saveState() {
	e.history.Push(state{
		grid:    e.grid.Clone(),
		score:   e.score,
		moves:   e.moves,
		maxTile: e.maxTile,
		elapsed: e.elapsed,
	})
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// Cell returns the value at (row, col), or 0 outside the grid.
func (e *Engine) Cell(row, col int) int {
	if row < 0 || row >= len(e.grid) || col < 0 || col >= len(e.grid) {
		return 0
	}
	return e.grid[row][col]
}

// Size returns the grid dimension, or 0 before the first Reset.
func (e *Engine) Size() int {
	return len(e.grid)
}

// Score returns the current score.
func (e *Engine) Score() int {
	return e.score
}

// BestScore returns the best score known to the engine.
func (e *Engine) BestScore() int {
	return e.bestScore
}

// SetBestScore seeds the best score, typically from persistent storage.
func (e *Engine) SetBestScore(best int) {
	e.bestScore = max(best, e.score)
}

// MoveCount returns the number of successful moves.
func (e *Engine) MoveCount() int {
	return e.moves
}

// MaxTile returns the largest tile seen in the current state.
func (e *Engine) MaxTile() int {
	return e.maxTile
}

// Elapsed returns the host-provided game time.
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// SetElapsed records the host-owned game clock.
func (e *Engine) SetElapsed(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.elapsed = d
}

// GameOver reports whether no move is left.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Won reports whether the win tile has been reached.
func (e *Engine) Won() bool {
	return e.won
}

// CanUndo reports whether Undo would change the state.
func (e *Engine) CanUndo() bool {
	return e.history.Len() > 1
}

// HistoryLen returns the number of stored undo snapshots.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}
