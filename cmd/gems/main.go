// gems is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	gems play [level-id]   - Pick a campaign level, or start one directly
//	gems endless           - Play the endless board
//	gems levels            - List campaign levels with progress
//	gems validate <path>   - Check level files
//	gems simulate [ids]    - Let the auto-player run levels headless
//	gems scores [level-id] - Show high scores
//	gems serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--db <path>          - Set database path (default: ~/.gems/progress.db)
//	--config <path>      - Use a specific gems.yaml
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gems",
	})

	// Effective configuration and where it came from, set by setup
	settings       = config.DefaultGemsConfig()
	settingsSource = "builtin"
)

func main() {
	// Commands return their errors so deferred cleanup, like closing the
	// progress database, runs before the exit.
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gems",
	Short: "Gems - a match-3 puzzle in your terminal",
	Long: `Gems is a match-3 puzzle: swap neighbouring pieces to line up three
or more of a kind, clear them and watch the board cascade.

Available commands:
  play      - Play the campaign
  endless   - Play without a move limit
  levels    - Show campaign levels and progress
  validate  - Check level files
  simulate  - Run the auto-player
  scores    - View high scores
  serve     - Start SSH server for remote play

Examples:
  gems play
  gems play 03
  gems endless --seed 42
  gems simulate --strategy greedy --save
  gems serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gems/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to gems.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(endlessCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the log level and loads the configuration before any
// command runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	cfg, source, err := config.LoadGemsFrom(flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "source", source)

	settings, settingsSource = cfg, source
	gems.Configure(cfg)
	return nil
}
