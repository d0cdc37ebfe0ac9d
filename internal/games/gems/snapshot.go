package gems

import gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateAnimating   GameStateType = "animating"
	StateLevelWon    GameStateType = "level_won"
	StateGameOver    GameStateType = "game_over"
	StateFailed      GameStateType = "failed"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "endless"
	Level     string // Level ID
	Score     int
	MovesLeft int // -1 in endless mode
	Stars     int
	Board     gcore.Snapshot
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick: g.tick,
		Mode: string(g.mode),
	}
	if g.level != nil {
		snap.Level = g.level.ID
	}
	if g.session == nil {
		snap.State = StateFailed
		return snap
	}

	snap.Score = g.session.Score()
	snap.MovesLeft = g.session.MovesLeft()
	snap.Stars = g.session.Stars()
	snap.Board = g.session.Board().Snapshot()

	switch {
	case g.tooSmall:
		snap.State = StatePausedSmall
	case g.gameOver && g.session.Won():
		snap.State = StateLevelWon
	case g.gameOver:
		snap.State = StateGameOver
	case g.playback.Busy():
		snap.State = StateAnimating
	default:
		snap.State = StatePlaying
	}
	return snap
}
