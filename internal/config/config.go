// Package config provides YAML-based configuration loading for the gems
// game: board tuning, session rules, the auto-player and the theme.
package config

// GemsConfig contains all configuration for the gems game.
type GemsConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Session  SessionConfig  `yaml:"session"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
	Levels   LevelsConfig   `yaml:"levels"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// BoardConfig defines engine and display parameters for the board.
type BoardConfig struct {
	MaxRetries     int `yaml:"max_retries"`     // Resamples per cell before a fill fails
	AnimationTicks int `yaml:"animation_ticks"` // Ticks per playback step, 0 = no animation
	CellWidth      int `yaml:"cell_width"`      // Screen columns per board cell
}

// SessionConfig defines the rules around a play-through.
type SessionConfig struct {
	Reshuffle    bool `yaml:"reshuffle"`     // Refill the board when no move is left
	EndlessTypes int  `yaml:"endless_types"` // Piece types on the endless board
}

// AutoplayConfig defines defaults for the simulate command.
type AutoplayConfig struct {
	Strategy string `yaml:"strategy"`  // "first", "greedy" or "random"
	MaxMoves int    `yaml:"max_moves"` // 0 = the level's move budget
}

// LevelsConfig defines where campaign levels come from.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Overrides the built-in campaign when set
}

// ThemeConfig defines how piece types are drawn. Entry i styles type i;
// types past the end wrap around.
type ThemeConfig struct {
	Palette []string `yaml:"palette"` // Color names, see core.ParseColor
	Glyphs  []string `yaml:"glyphs"`  // First rune of each entry is used
}

// Limits applied by Validate.
const (
	MinCellWidth    = 1
	MaxCellWidth    = 4
	MaxAnimTicks    = 60
	MinEndlessTypes = 4 // three piece types can leave refill with no legal type
	MaxEndlessTypes = 9
)

var strategies = []string{"first", "greedy", "random"}

// Validate clamps out-of-range values and fills empty ones from the
// defaults. It returns the names of the fields it changed.
func (c *GemsConfig) Validate() []string {
	def := DefaultGemsConfig()
	var fixed []string

	if c.Board.MaxRetries <= 0 {
		c.Board.MaxRetries = def.Board.MaxRetries
		fixed = append(fixed, "board.max_retries")
	}
	if c.Board.AnimationTicks < 0 || c.Board.AnimationTicks > MaxAnimTicks {
		c.Board.AnimationTicks = clamp(c.Board.AnimationTicks, 0, MaxAnimTicks)
		fixed = append(fixed, "board.animation_ticks")
	}
	if c.Board.CellWidth < MinCellWidth || c.Board.CellWidth > MaxCellWidth {
		c.Board.CellWidth = def.Board.CellWidth
		fixed = append(fixed, "board.cell_width")
	}
	if c.Session.EndlessTypes < MinEndlessTypes || c.Session.EndlessTypes > MaxEndlessTypes {
		c.Session.EndlessTypes = clamp(c.Session.EndlessTypes, MinEndlessTypes, MaxEndlessTypes)
		fixed = append(fixed, "session.endless_types")
	}
	if !knownStrategy(c.Autoplay.Strategy) {
		c.Autoplay.Strategy = def.Autoplay.Strategy
		fixed = append(fixed, "autoplay.strategy")
	}
	if c.Autoplay.MaxMoves < 0 {
		c.Autoplay.MaxMoves = 0
		fixed = append(fixed, "autoplay.max_moves")
	}
	if len(c.Theme.Palette) == 0 {
		c.Theme.Palette = def.Theme.Palette
		fixed = append(fixed, "theme.palette")
	}
	if len(c.Theme.Glyphs) == 0 {
		c.Theme.Glyphs = def.Theme.Glyphs
		fixed = append(fixed, "theme.glyphs")
	}
	return fixed
}

func knownStrategy(s string) bool {
	for _, known := range strategies {
		if s == known {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
