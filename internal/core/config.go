package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in cells
	ScreenH  int   // Terminal height in cells
	TickRate int   // Simulation ticks per second
	Seed     int64 // Board seed; the same seed deals the same board
}

// GameState is the part of a game the platform cares about: what to save
// and whether input still goes to the board.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Won      bool // Whether the player reached the level goal
	Stars    int  // Stars earned so far, 0..3
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished is set on the tick a game ends, so the platform records the
	// result exactly once.
	Finished bool
}
