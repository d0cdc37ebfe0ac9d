package main

import (
	"testing"

	gcore "github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

func TestModeRows(t *testing.T) {
	games := []registry.GameInfo{
		{ID: "gems", Title: "Gems"},
		{ID: "gems_endless", Title: "Gems Endless"},
	}
	ls := []levels.Level{
		{Level: gcore.NewLevel("01", 5, 5)},
		{Level: gcore.NewLevel("02", 5, 5)},
		{Level: gcore.NewLevel("03", 5, 5)},
	}

	tests := []struct {
		name     string
		progress map[string]storage.LevelProgress
		stats    map[string]*storage.GameStats
		want     []string
	}{
		{
			name: "nothing played",
			want: []string{"0/3 levels won, 0/9 stars", "no games yet"},
		},
		{
			name: "some progress",
			progress: map[string]storage.LevelProgress{
				"01": {Wins: 2, BestStars: 3},
				"02": {Plays: 4, BestStars: 0},
				"03": {Wins: 1, BestStars: 1},
			},
			stats: map[string]*storage.GameStats{
				"gems_endless": {GamesCount: 1, HighScore: 840},
			},
			want: []string{"2/3 levels won, 4/9 stars", "best 840 in 1 game"},
		},
		{
			name:  "many endless games",
			stats: map[string]*storage.GameStats{"gems_endless": {GamesCount: 12, HighScore: 5000}},
			want:  []string{"0/3 levels won, 0/9 stars", "best 5000 in 12 games"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := modeRows(games, ls, tt.progress, tt.stats)
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, r := range rows {
				if r.ID != games[i].ID || r.Detail != tt.want[i] {
					t.Errorf("row %d = %+v, want detail %q", i, r, tt.want[i])
				}
			}
		})
	}
}
