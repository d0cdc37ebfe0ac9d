package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagScoreLimit int
	flagShowRuns   bool
	flagPlayer     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level-id|endless]",
	Short: "Show high scores",
	Long: `Without arguments, shows the best result on every campaign level and in
endless mode. With a level ID (or "endless"), shows that table.

Examples:
  gems scores
  gems scores 02
  gems scores endless --limit 20
  gems scores --player alice
  gems scores 03 --runs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Show saved auto-player runs instead of scores")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show one player's best in each mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening progress database: %w", err)
	}
	defer store.Close()

	target := ""
	if len(args) == 1 {
		target = args[0]
	}

	switch {
	case flagShowRuns:
		err = showRuns(store, target)
	case flagPlayer != "":
		err = showPlayer(store, flagPlayer)
	case target == "":
		err = showSummary(store)
	default:
		err = showTable(store, target)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}
	return nil
}

func showTable(store *storage.Store, target string) error {
	var scores []storage.ScoreEntry
	var err error
	title := "Level " + target
	if target == "endless" {
		title = "Endless"
		scores, err = store.TopScores("gems_endless", flagScoreLimit)
	} else {
		scores, err = store.TopLevelScores(target, flagScoreLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Stars", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "-----", "------", "----")
	for i, e := range scores {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5s  %-12s  %s\n", i+1, e.Score, strings.Repeat("*", e.Stars), e.Player, dateStr)
	}
	return nil
}

func showSummary(store *storage.Store) error {
	ls, err := loadCampaign()
	if err != nil {
		return err
	}
	progress, err := store.AllProgress()
	if err != nil {
		return err
	}

	fmt.Println("Campaign")
	fmt.Println()
	fmt.Printf("  %-4s  %-18s  %6s  %-5s  %5s  %4s\n", "ID", "Name", "Best", "Stars", "Plays", "Wins")
	fmt.Printf("  %-4s  %-18s  %6s  %-5s  %5s  %4s\n", "--", "----", "----", "-----", "-----", "----")
	for _, l := range ls {
		p := progress[l.ID]
		fmt.Printf("  %-4s  %-18s  %6d  %-5s  %5d  %4d\n",
			l.ID, l.Name, p.BestScore, strings.Repeat("*", p.BestStars), p.Plays, p.Wins)
	}

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	fmt.Println()
	if st, ok := stats["gems_endless"]; ok {
		fmt.Printf("Endless: best %d, %d games, average %.0f, last played %s\n",
			st.HighScore, st.GamesCount, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Endless: no games yet")
	}
	return nil
}

func showPlayer(store *storage.Store, player string) error {
	campaign, err := store.PlayerBest(player, "gems")
	if err != nil {
		return err
	}
	endless, err := store.PlayerBest(player, "gems_endless")
	if err != nil {
		return err
	}
	fmt.Printf("%s: campaign best %d, endless best %d\n", player, campaign, endless)
	return nil
}

func showRuns(store *storage.Store, levelID string) error {
	runs, err := store.RecentRuns(levelID, flagScoreLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs saved yet. Use 'gems simulate --save'.")
		return nil
	}

	fmt.Printf("  %-36s  %-8s  %-8s  %6s  %5s  %s\n", "Run", "Level", "Strategy", "Score", "Moves", "Result")
	for _, r := range runs {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  %-36s  %-8s  %-8s  %6d  %5d  %s\n", r.ID, r.LevelID, r.Strategy, r.Score, r.Moves, result)
	}
	return nil
}
