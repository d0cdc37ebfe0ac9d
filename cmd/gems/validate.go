package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dir|file>...",
	Short: "Check level files",
	Long: `Parses and validates level files. Directories are scanned recursively.
Exits with status 1 if any file is invalid.

Examples:
  gems validate ./levels
  gems validate ./levels/07_spiral.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	bad := 0
	for _, p := range args {
		info, err := os.Stat(p)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", p, err)
			bad++
			continue
		}

		if !info.IsDir() {
			lvl, err := levels.ReadFile(p)
			if err != nil {
				fmt.Printf("FAIL  %v\n", err)
				bad++
				continue
			}
			printValid(lvl)
			continue
		}

		loader := levels.NewLoader(p)
		ls, err := loader.LoadAll()
		if err != nil {
			fmt.Printf("FAIL  %v\n", err)
			bad++
			continue
		}
		for _, lvl := range ls {
			printValid(lvl)
		}
		for _, skipped := range loader.Skipped() {
			fmt.Printf("FAIL  %v\n", skipped)
			bad++
		}
		if dup := duplicateIDs(ls); len(dup) > 0 {
			fmt.Printf("FAIL  %s: duplicate level IDs %v\n", p, dup)
			bad++
		}
	}

	fmt.Println()
	if bad > 0 {
		fmt.Printf("%d problem(s) found\n", bad)
		os.Exit(1)
	}
	fmt.Println("All levels valid")
}

func printValid(lvl levels.Level) {
	fmt.Printf("ok    %s (%s %q, %dx%d, %d moves)\n", lvl.FilePath, lvl.ID, lvl.Name, lvl.W, lvl.H, lvl.MaxMoves)
}

// duplicateIDs returns the IDs used by more than one level.
func duplicateIDs(ls []levels.Level) []string {
	seen := make(map[string]int)
	var dup []string
	for _, l := range ls {
		seen[l.ID]++
		if seen[l.ID] == 2 {
			dup = append(dup, l.ID)
		}
	}
	return dup
}
