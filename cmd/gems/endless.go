package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
)

var endlessCmd = &cobra.Command{
	Use:   "endless",
	Short: "Play without a move limit",
	Long: `Play an 8x8 board with no move limit. The run ends when the board
has no move left and reshuffling cannot find one.

Examples:
  gems endless
  gems endless --seed 7`,
	Args: cobra.NoArgs,
	RunE: runEndless,
}

func runEndless(_ *cobra.Command, _ []string) error {
	store := openStore()
	defer closeStore(store)
	cfg := runtimeConfig()

	game, err := registry.Create("gems_endless")
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	back, err := tui.Run(game, store, cfg)
	if err != nil || !back {
		return err
	}
	ls, err := loadCampaign()
	if err != nil {
		return err
	}
	return menuLoop(ls, store, cfg)
}
