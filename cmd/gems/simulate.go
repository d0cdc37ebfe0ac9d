package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagStrategy string
	flagMoves    int
	flagRuns     int
	flagEndless  bool
	flagSave     bool
	flagVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [level-id...]",
	Short: "Let the auto-player run levels headless",
	Long: `Plays levels without a terminal using one of the auto-player
strategies and prints the results. Without level IDs every campaign level
is played.

Strategies:
  first   - the first possible swap in scan order
  greedy  - the swap with the largest immediate points
  random  - a random possible swap (seeded)

Examples:
  gems simulate
  gems simulate 01 02 --strategy random --runs 20 --seed 1
  gems simulate --endless --moves 200
  gems simulate 03 -v --log-level debug
  gems simulate --save`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Strategy: first, greedy, random (default from config)")
	simulateCmd.Flags().IntVar(&flagMoves, "moves", -1, "Stop after this many moves (0 = level budget, -1 = from config)")
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Runs per level, with consecutive seeds")
	simulateCmd.Flags().BoolVar(&flagEndless, "endless", false, "Simulate the endless board instead of campaign levels")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store results in the runs table")
	simulateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every board event")
}

func runSimulate(_ *cobra.Command, args []string) error {
	name := flagStrategy
	if name == "" {
		name = settings.Autoplay.Strategy
	}
	strategy, err := gems.ParseStrategy(name)
	if err != nil {
		return err
	}

	moves := flagMoves
	if moves < 0 {
		moves = settings.Autoplay.MaxMoves
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	targets, err := simulationTargets(args)
	if err != nil {
		return err
	}

	var store *storage.Store
	if flagSave {
		store = openStore()
		if store == nil {
			return fmt.Errorf("--save needs the progress database at %s", flagDBPath)
		}
		defer closeStore(store)
	}

	fmt.Printf("  %-8s  %-8s  %20s  %6s  %-5s  %5s  %8s  %10s  %s\n",
		"Level", "Strategy", "Seed", "Score", "Stars", "Moves", "Cascades", "Reshuffles", "Result")

	failed := 0
	for _, lvl := range targets {
		total, wins := 0, 0
		runs := core.Max(flagRuns, 1)
		for i := 0; i < runs; i++ {
			res, err := simulateOne(lvl, strategy, seed+int64(i), moves)
			if err != nil {
				logger.Error("simulation failed", "level", lvl.ID, "seed", seed+int64(i), "error", err)
				failed++
				continue
			}
			printResult(res)
			total += res.Score
			if res.Won {
				wins++
			}
			if store != nil {
				saveRun(store, res)
			}
		}
		if runs > 1 {
			fmt.Printf("  %-8s  avg score %d, won %d/%d\n", lvl.ID, total/runs, wins, runs)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d simulation runs failed", failed)
	}
	return nil
}

// simulationTargets resolves the levels to play.
func simulationTargets(ids []string) ([]*gcore.Level, error) {
	if flagEndless {
		return []*gcore.Level{gems.EndlessLevel(settings.Session.EndlessTypes)}, nil
	}

	ls, err := loadCampaign()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		out := make([]*gcore.Level, len(ls))
		for i, l := range ls {
			out[i] = l.Level
		}
		return out, nil
	}

	var out []*gcore.Level
	for _, id := range ids {
		found := false
		for _, l := range ls {
			if l.ID == id {
				out = append(out, l.Level)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown level %q (available: %s)", id, strings.Join(levelIDs(ls), ", "))
		}
	}
	return out, nil
}

func simulateOne(lvl *gcore.Level, strategy gems.Strategy, seed int64, moves int) (gems.SimResult, error) {
	opts := gems.SimOptions{
		Strategy:   strategy,
		Seed:       seed,
		MaxMoves:   moves,
		MaxRetries: settings.Board.MaxRetries,
		Reshuffle:  settings.Session.Reshuffle,
	}
	if flagEndless {
		opts.Mode = gems.ModeEndless
	}
	if flagVerbose {
		opts.Listener = gems.NewLogListener(logger.With("level", lvl.ID, "seed", seed))
	}
	return gems.SimulateWith(lvl, opts)
}

func printResult(res gems.SimResult) {
	result := "lost"
	switch {
	case res.Won:
		result = "won"
	case res.Deadlocked:
		result = "deadlock"
	case flagEndless:
		result = "stopped"
	}
	stars := strings.Repeat("*", res.Stars) + strings.Repeat(".", 3-res.Stars)
	fmt.Printf("  %-8s  %-8s  %20d  %6d  %-5s  %5d  %8d  %10d  %s\n",
		res.LevelID, res.Strategy, res.Seed, res.Score, stars, res.Moves, res.Cascades, res.Reshuffles, result)
}

func saveRun(store *storage.Store, res gems.SimResult) {
	id, err := store.SaveRun(storage.RunEntry{
		LevelID:    res.LevelID,
		Strategy:   string(res.Strategy),
		Seed:       res.Seed,
		Score:      res.Score,
		Stars:      res.Stars,
		Moves:      res.Moves,
		Cascades:   res.Cascades,
		Reshuffles: res.Reshuffles,
		Won:        res.Won,
	})
	if err != nil {
		logger.Warn("could not save run", "level", res.LevelID, "error", err)
		return
	}
	logger.Debug("run saved", "id", id, "level", res.LevelID)
}
