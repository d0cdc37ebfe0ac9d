package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var flagAnyLevel bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign",
	Long: `Start the campaign. Without a level ID the level list opens; locked
levels open once the previous level is won.

Controls:
  Arrows/WASD  - Move the cursor (swap when a piece is selected)
  Space/Enter  - Select a piece
  H            - Show a hint
  P            - Pause
  R            - Restart the level
  Enter        - Next level (after a win)
  B/Esc        - Back to the level list (paused or game over)
  Q/Ctrl+C     - Quit

Examples:
  gems play
  gems play 02
  gems play 05 --any
  gems play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAnyLevel, "any", false, "Allow starting a locked level")
}

func runPlay(_ *cobra.Command, args []string) error {
	ls, err := loadCampaign()
	if err != nil {
		return err
	}
	store := openStore()
	defer closeStore(store)
	cfg := runtimeConfig()

	if len(args) == 1 {
		id := args[0]
		if !hasLevel(ls, id) {
			return fmt.Errorf("unknown level %q (available: %s)", id, strings.Join(levelIDs(ls), ", "))
		}
		if store != nil && !flagAnyLevel {
			ok, err := store.IsUnlocked(levelIDs(ls), id)
			if err != nil {
				logger.Warn("cannot read progress", "error", err)
			} else if !ok {
				return fmt.Errorf("level %s is locked (use --any to play it anyway)", id)
			}
		}

		gems.SetStartLevel(id)
		game, err := registry.Create("gems")
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		back, err := tui.Run(game, store, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}

	return menuLoop(ls, store, cfg)
}

// menuLoop alternates between the level list, the scoreboard and games
// until the player quits.
func menuLoop(ls []levels.Level, store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		entries, err := tui.LevelEntries(ls, store)
		if err != nil {
			return fmt.Errorf("reading progress: %w", err)
		}

		result, err := tui.RunLevelMenu(entries, cfg)
		if err != nil {
			return err
		}
		cfg = result.Config

		switch {
		case result.Quit:
			return nil
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(store, tui.ScoreboardPages(ls), cfg.ScreenW, cfg.ScreenH)
			if err != nil || !back {
				return err
			}
			continue
		}

		back, err := tui.Run(result.Selection.NewGame(), store, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// loadCampaign loads the levels from levels.dir, or the built-in set, and
// installs them as the campaign.
func loadCampaign() ([]levels.Level, error) {
	loader := levels.Builtin()
	if dir := settings.Levels.Dir; dir != "" {
		loader = levels.NewLoader(dir)
	}
	ls, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	for _, skipped := range loader.Skipped() {
		logger.Warn("level skipped", "file", skipped.Path, "error", skipped.Err)
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("no levels found in %s", loader.Root)
	}

	gems.SetCampaign(ls)
	return ls, nil
}

// openStore opens the progress database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progress database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

func hasLevel(ls []levels.Level, id string) bool {
	for _, l := range ls {
		if l.ID == id {
			return true
		}
	}
	return false
}

func levelIDs(ls []levels.Level) []string {
	ids := make([]string, len(ls))
	for i, l := range ls {
		ids[i] = l.ID
	}
	return ids
}
