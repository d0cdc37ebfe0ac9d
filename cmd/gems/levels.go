package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/platform/tui"
)

var flagResetProgress bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels with progress",
	Long: `Shows every campaign level with its size, move budget, star goals and
your best result. Levels come from levels.dir in gems.yaml, or the built-in
campaign.

Examples:
  gems levels
  gems levels --reset`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagResetProgress, "reset", false, "Forget all progress before listing")
}

func runLevels(_ *cobra.Command, _ []string) error {
	ls, err := loadCampaign()
	if err != nil {
		return err
	}
	store := openStore()
	defer closeStore(store)

	if flagResetProgress && store != nil {
		if err := store.ResetProgress(); err != nil {
			return fmt.Errorf("resetting progress: %w", err)
		}
		fmt.Println("Progress reset.")
		fmt.Println()
	}

	entries, err := tui.LevelEntries(ls, store)
	if err != nil {
		return fmt.Errorf("reading progress: %w", err)
	}

	fmt.Printf("  %-4s  %-18s  %-5s  %5s  %-16s  %6s  %s\n", "ID", "Name", "Size", "Moves", "Goals", "Best", "Stars")
	fmt.Printf("  %-4s  %-18s  %-5s  %5s  %-16s  %6s  %s\n", "--", "----", "----", "-----", "-----", "----", "-----")

	for i, e := range entries {
		s := ls[i].Stars
		goals := fmt.Sprintf("%d/%d/%d", s[0], s[1], s[2])
		stars := strings.Repeat("*", e.BestStars) + strings.Repeat(".", 3-e.BestStars)
		if !e.Unlocked {
			stars = "locked"
		}
		fmt.Printf("  %-4s  %-18s  %-5s  %5d  %-16s  %6d  %s\n", e.ID, e.Name, e.Size, e.Moves, goals, e.BestScore, stars)
	}
	return nil
}
