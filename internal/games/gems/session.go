package gems

import (
	"errors"
	"fmt"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

const (
	// maxReshuffles bounds the resets tried when a board has no possible swap.
	maxReshuffles = 16

	// MinEndlessTypes is the fewest piece types that always leave refill a
	// legal type: an empty cell is ruled out by at most three neighbouring
	// pairs (left, right and below).
	MinEndlessTypes = 4

	EndlessWidth  = 8
	EndlessHeight = 8
)

var (
	// ErrGameOver is returned by Swap once the session has ended.
	ErrGameOver = errors.New("gems: game over")
	// ErrNoLevel is returned by NewSession for a nil level.
	ErrNoLevel = errors.New("gems: no level")
)

// SessionOptions configures a Session.
type SessionOptions struct {
	Seed       int64
	Mode       Mode
	MaxRetries int
	// Reshuffle resets the board whenever no swap can form a match.
	Reshuffle bool
	// Listener receives every board event after the session has seen it.
	Listener gcore.Listener
}

// Session is one play-through of a level: score, move budget, deadlock
// handling. The board does the matching.
type Session struct {
	level *gcore.Level
	board *gcore.Board
	opts  SessionOptions

	score      int
	movesLeft  int
	moves      int
	cascades   int
	reshuffles int
	over       bool
	deadlocked bool
}

// sessionListener keeps score and the move counter in step with the board.
type sessionListener struct {
	gcore.NopListener
	s *Session
}

func (l sessionListener) OnPointsScored(delta int) {
	l.s.score += delta
}

func (l sessionListener) OnSuccessfulMove() {
	l.s.countMove()
}

// NewSession creates the board for level and fills it.
func NewSession(level *gcore.Level, opts SessionOptions) (*Session, error) {
	if level == nil {
		return nil, ErrNoLevel
	}
	if opts.Mode == "" {
		opts.Mode = ModeCampaign
	}

	s := &Session{level: level, opts: opts}
	s.board = gcore.NewBoard(
		gcore.WithSeed(opts.Seed),
		gcore.WithMaxRetries(opts.MaxRetries),
	)
	s.SetListener(opts.Listener)
	s.resetCounters()
	if err := s.board.Create(level); err != nil {
		return nil, fmt.Errorf("gems: level %s: %w", level.ID, err)
	}
	if err := s.ensureMoves(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) resetCounters() {
	s.score = 0
	s.moves = 0
	s.cascades = 0
	s.reshuffles = 0
	s.over = false
	s.deadlocked = false
	s.movesLeft = s.level.MaxMoves
	if s.movesLeft <= 0 {
		s.movesLeft = gcore.DefaultMaxMoves
	}
}

// Swap plays one move. A rejected swap costs nothing.
func (s *Session) Swap(a, b gcore.Pos) (gcore.SwapOutcome, error) {
	if s.over {
		return gcore.SwapOutcome{}, ErrGameOver
	}

	out, err := s.board.TrySwap(a, b)
	if err != nil && s.opts.Reshuffle && errors.Is(err, gcore.ErrRetriesExhausted) {
		err = s.recoverRefill()
	}
	if err != nil {
		if s.board.State() == gcore.StateFailed {
			s.over = true
		}
		return out, err
	}
	if !out.Accepted() {
		return out, nil
	}

	s.cascades += out.Steps
	if !s.over {
		if err := s.ensureMoves(); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (s *Session) countMove() {
	s.moves++
	if s.opts.Mode == ModeEndless {
		return
	}
	s.movesLeft--
	if s.movesLeft <= 0 {
		s.over = true
	}
}

// recoverRefill reshuffles a board whose refill ran out of legal types.
// The move that got there has already scored, so it still counts.
func (s *Session) recoverRefill() error {
	s.countMove()
	if err := s.board.Reset(); err != nil {
		return fmt.Errorf("gems: reshuffle: %w", err)
	}
	s.reshuffles++
	return nil
}

// ensureMoves reshuffles a deadlocked board. Without reshuffling, or when
// every attempt stays deadlocked, the session ends.
func (s *Session) ensureMoves() error {
	for attempt := 0; len(gcore.PossibleSwaps(s.board)) == 0; attempt++ {
		if !s.opts.Reshuffle || attempt >= maxReshuffles {
			s.deadlocked = true
			s.over = true
			return nil
		}
		if err := s.board.Reset(); err != nil {
			s.over = true
			return fmt.Errorf("gems: reshuffle: %w", err)
		}
		s.reshuffles++
	}
	return nil
}

// Restart refills the board and zeroes the counters. It also recovers a
// board that failed during refill.
func (s *Session) Restart() error {
	s.resetCounters()
	if err := s.board.Reset(); err != nil {
		s.over = true
		return fmt.Errorf("gems: restart: %w", err)
	}
	return s.ensureMoves()
}

// Hint returns a swap that forms a match, preferring the one worth most.
func (s *Session) Hint() (gcore.Swap, bool) {
	if s.over {
		return gcore.Swap{}, false
	}
	return ChooseSwap(s.board, StrategyGreedy, nil)
}

// EndlessLevel returns the open board used by endless mode. types <= 0
// uses the default count; other values are raised to MinEndlessTypes.
func EndlessLevel(types int) *gcore.Level {
	switch {
	case types <= 0:
		types = gcore.DefaultNumTypes
	case types < MinEndlessTypes:
		types = MinEndlessTypes
	}
	l := gcore.NewLevel("endless", EndlessWidth, EndlessHeight)
	l.Name = "Endless"
	l.Distribution = gcore.UniformDistribution(types)
	l.Points = gcore.UniformPoints(types, gcore.DefaultPoints)
	return l
}

// StarsFor rates score against the three thresholds.
func StarsFor(score int, thresholds [3]int) int {
	switch {
	case score > thresholds[2]:
		return 3
	case score > thresholds[1]:
		return 2
	case score >= thresholds[0]:
		return 1
	default:
		return 0
	}
}

func (s *Session) Score() int          { return s.score }
func (s *Session) Moves() int          { return s.moves }
func (s *Session) Cascades() int       { return s.cascades }
func (s *Session) Reshuffles() int     { return s.reshuffles }
func (s *Session) Over() bool          { return s.over }
func (s *Session) Deadlocked() bool    { return s.deadlocked }
func (s *Session) Mode() Mode          { return s.opts.Mode }
func (s *Session) Board() *gcore.Board { return s.board }
func (s *Session) Level() *gcore.Level { return s.level }
func (s *Session) Stars() int          { return StarsFor(s.score, s.level.Stars) }

// MovesLeft returns the remaining move budget, or -1 in endless mode.
func (s *Session) MovesLeft() int {
	if s.opts.Mode == ModeEndless {
		return -1
	}
	return s.movesLeft
}

// Won reports whether the campaign goal (the first star) has been reached.
func (s *Session) Won() bool {
	return s.opts.Mode == ModeCampaign && s.score >= s.level.Stars[0]
}

// SetListener replaces the extra listener given in SessionOptions.
func (s *Session) SetListener(l gcore.Listener) {
	var listener gcore.Listener = sessionListener{s: s}
	if l != nil {
		listener = gcore.Listeners{listener, l}
	}
	s.opts.Listener = l
	s.board.SetListener(listener)
}
