package gems

import (
	"github.com/charmbracelet/log"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// LogListener writes every board event to a logger at debug level.
type LogListener struct {
	logger *log.Logger
	moves  int
}

// NewLogListener returns a listener logging to logger with a "board" prefix.
func NewLogListener(logger *log.Logger) *LogListener {
	return &LogListener{logger: logger.WithPrefix("board")}
}

func (l *LogListener) OnPieceSpawned(p gcore.Piece, from gcore.Pos) {
	l.logger.Debug("spawned", "id", p.ID, "type", p.Type, "from", from, "to", p.Pos)
}

func (l *LogListener) OnPieceMoved(id gcore.PieceID, from, to gcore.Pos) {
	l.logger.Debug("moved", "id", id, "from", from, "to", to)
}

func (l *LogListener) OnPieceRemoved(id gcore.PieceID) {
	l.logger.Debug("removed", "id", id)
}

func (l *LogListener) OnPointsScored(delta int) {
	l.logger.Debug("scored", "points", delta)
}

func (l *LogListener) OnSuccessfulMove() {
	l.moves++
	l.logger.Debug("move settled", "move", l.moves)
}

func (l *LogListener) OnSwapRejected() {
	l.logger.Debug("swap rejected")
}
