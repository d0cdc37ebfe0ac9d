package gems

import (
	"fmt"
	"math/rand"
	"strings"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// Strategy picks the next swap for the auto-player.
type Strategy string

const (
	StrategyFirst  Strategy = "first"
	StrategyGreedy Strategy = "greedy"
	StrategyRandom Strategy = "random"
)

// defaultSimMoves caps simulations of endless sessions.
const defaultSimMoves = 100

// Strategies returns all strategies in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyFirst, StrategyGreedy, StrategyRandom}
}

// ParseStrategy parses a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Strategies() {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("gems: unknown strategy %q (want first, greedy or random)", name)
}

// ChooseSwap returns a swap that forms a match on b, or false when none
// exists. rng is only used by StrategyRandom; nil falls back to the first swap.
func ChooseSwap(b *gcore.Board, s Strategy, rng *rand.Rand) (gcore.Swap, bool) {
	swaps := gcore.PossibleSwaps(b)
	if len(swaps) == 0 {
		return gcore.Swap{}, false
	}

	switch s {
	case StrategyGreedy:
		best, bestPts := swaps[0], -1
		for _, sw := range swaps {
			if pts := PreviewPoints(b, sw); pts > bestPts {
				best, bestPts = sw, pts
			}
		}
		return best, true
	case StrategyRandom:
		if rng != nil {
			return swaps[rng.Intn(len(swaps))], true
		}
	}
	return swaps[0], true
}

// PreviewPoints returns the points the first cascade step of sw would score.
func PreviewPoints(b *gcore.Board, sw gcore.Swap) int {
	total := 0
	for _, p := range gcore.PreviewSwap(b, sw.A, sw.B).Sorted() {
		src := p
		switch p {
		case sw.A:
			src = sw.B
		case sw.B:
			src = sw.A
		}
		if t, ok := b.TypeAt(src); ok {
			total += b.PointsFor(t)
		}
	}
	return total
}

// SimOptions configures Simulate.
type SimOptions struct {
	Strategy   Strategy
	Seed       int64
	MaxMoves   int // 0 plays the level's budget, or defaultSimMoves in endless mode
	Mode       Mode
	MaxRetries int
	Reshuffle  bool
	Listener   gcore.Listener
}

// SimResult summarises a headless play-through.
type SimResult struct {
	LevelID    string
	Strategy   Strategy
	Seed       int64
	Score      int
	Stars      int
	Moves      int
	Cascades   int
	Reshuffles int
	Won        bool
	Deadlocked bool
}

// Simulate plays level to the end with the given strategy.
func Simulate(level *gcore.Level, strategy Strategy, seed int64, maxMoves int) (SimResult, error) {
	return SimulateWith(level, SimOptions{
		Strategy:  strategy,
		Seed:      seed,
		MaxMoves:  maxMoves,
		Reshuffle: true,
	})
}

// SimulateWith is Simulate with every session option exposed.
func SimulateWith(level *gcore.Level, opts SimOptions) (SimResult, error) {
	if opts.Strategy == "" {
		opts.Strategy = StrategyGreedy
	}
	s, err := NewSession(level, SessionOptions{
		Seed:       opts.Seed,
		Mode:       opts.Mode,
		MaxRetries: opts.MaxRetries,
		Reshuffle:  opts.Reshuffle,
		Listener:   opts.Listener,
	})
	if err != nil {
		return SimResult{}, err
	}

	limit := opts.MaxMoves
	if limit <= 0 && s.Mode() == ModeEndless {
		limit = defaultSimMoves
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	for !s.Over() && (limit <= 0 || s.Moves() < limit) {
		sw, ok := ChooseSwap(s.Board(), opts.Strategy, rng)
		if !ok {
			break
		}
		out, err := s.Swap(sw.A, sw.B)
		if err != nil {
			return resultOf(s, opts), err
		}
		if !out.Accepted() {
			return resultOf(s, opts), fmt.Errorf("gems: swap %v/%v was offered but rejected", sw.A, sw.B)
		}
	}
	return resultOf(s, opts), nil
}

func resultOf(s *Session, opts SimOptions) SimResult {
	return SimResult{
		LevelID:    s.Level().ID,
		Strategy:   opts.Strategy,
		Seed:       opts.Seed,
		Score:      s.Score(),
		Stars:      s.Stars(),
		Moves:      s.Moves(),
		Cascades:   s.Cascades(),
		Reshuffles: s.Reshuffles(),
		Won:        s.Won(),
		Deadlocked: s.Deadlocked(),
	}
}
