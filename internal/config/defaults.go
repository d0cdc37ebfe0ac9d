package config

import (
	_ "embed"
)

//go:embed defaults/gems.yaml
var defaultGemsYAML []byte

// DefaultGemsConfig returns the default gems configuration.
func DefaultGemsConfig() GemsConfig {
	return GemsConfig{
		Board: BoardConfig{
			MaxRetries:     100,
			AnimationTicks: 6,
			CellWidth:      2,
		},
		Session: SessionConfig{
			Reshuffle:    true,
			EndlessTypes: 6,
		},
		Autoplay: AutoplayConfig{
			Strategy: "greedy",
			MaxMoves: 0,
		},
		Theme: ThemeConfig{
			Palette: []string{"bright_red", "bright_green", "bright_blue", "bright_yellow", "bright_magenta", "bright_cyan", "orange", "white", "gray"},
			Glyphs:  []string{"●", "◆", "▲", "■", "★", "♥", "♣", "♠", "✚"},
		},
	}
}
