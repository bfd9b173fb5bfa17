package core

import "time"

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a game reports to the platform after each step.
type GameState struct {
	Score     int           // Current score
	BestScore int           // Best score including the current game
	MaxTile   int           // Largest tile on the board
	Moves     int           // Successful moves so far
	Elapsed   time.Duration // Game clock
	GameOver  bool          // No move left; the platform saves the score
	Won       bool          // Win tile reached
	Paused    bool          // Paused or waiting for the player
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Moved bool // The board changed this tick
}
