package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateWon      GameStateType = "won"
	StateGameOver GameStateType = "game_over"
)

// Snapshot is a read-only copy of the engine state for hosts.
type Snapshot struct {
	Size      int           `json:"size"`
	Grid      Grid          `json:"grid"`
	Score     int           `json:"score"`
	BestScore int           `json:"best_score"`
	Moves     int           `json:"moves"`
	MaxTile   int           `json:"max_tile"`
	ElapsedMS int64         `json:"elapsed_ms"`
	Won       bool          `json:"won"`
	GameOver  bool          `json:"game_over"`
	CanUndo   bool          `json:"can_undo"`
	State     GameStateType `json:"state"`
}

// Snapshot returns the current engine state. The grid is copied.
func (e *Engine) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case e.gameOver:
		state = StateGameOver
	case e.won:
		state = StateWon
	}

	return Snapshot{
		Size:      e.Size(),
		Grid:      e.grid.Clone(),
		Score:     e.score,
		BestScore: e.bestScore,
		Moves:     e.moves,
		MaxTile:   e.maxTile,
		ElapsedMS: e.elapsed.Milliseconds(),
		Won:       e.won,
		GameOver:  e.gameOver,
		CanUndo:   e.CanUndo(),
		State:     state,
	}
}
