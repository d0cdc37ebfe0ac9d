package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long: `Shows the registered game modes with what you have done in each:
levels won and stars collected in the campaign, the best score and number
of games in endless mode.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// modeRow is one line of the mode list.
type modeRow struct {
	ID, Title, Detail string
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No game modes available.")
		return nil
	}

	ls, err := loadCampaign()
	if err != nil {
		return err
	}
	store := openStore()
	defer closeStore(store)

	var progress map[string]storage.LevelProgress
	var stats map[string]*storage.GameStats
	if store != nil {
		if progress, err = store.AllProgress(); err != nil {
			logger.Warn("cannot read progress", "error", err)
		}
		if stats, err = store.GetAllGamesStats(); err != nil {
			logger.Warn("cannot read scores", "error", err)
		}
	}

	rows := modeRows(games, ls, progress, stats)
	idW, titleW := 2, 5 // header widths
	for _, r := range rows {
		idW = max(idW, len(r.ID))
		titleW = max(titleW, len(r.Title))
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Progress")
	fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "--------")
	for _, r := range rows {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, r.ID, titleW, r.Title, r.Detail)
	}

	fmt.Println()
	fmt.Println("Run 'gems play' for the campaign or 'gems endless' for endless mode.")
	return nil
}

// modeRows describes each mode. Nil progress or stats read as nothing
// played yet.
func modeRows(games []registry.GameInfo, ls []levels.Level, progress map[string]storage.LevelProgress, stats map[string]*storage.GameStats) []modeRow {
	rows := make([]modeRow, 0, len(games))
	for _, g := range games {
		r := modeRow{ID: g.ID, Title: g.Title}
		switch g.ID {
		case "gems":
			won, stars := 0, 0
			for _, l := range ls {
				p := progress[l.ID]
				if p.Wins > 0 {
					won++
				}
				stars += min(max(p.BestStars, 0), 3)
			}
			r.Detail = fmt.Sprintf("%d/%d levels won, %d/%d stars", won, len(ls), stars, 3*len(ls))
		case "gems_endless":
			if st, ok := stats[g.ID]; ok && st.GamesCount > 0 {
				r.Detail = "best " + strconv.Itoa(st.HighScore) + " in " + plural(st.GamesCount, "game")
			} else {
				r.Detail = "no games yet"
			}
		}
		rows = append(rows, r)
	}
	return rows
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
