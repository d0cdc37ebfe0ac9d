// Package formats provides level file format parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Moves        int               `yaml:"moves,omitempty"`
	Stars        []int             `yaml:"stars,omitempty"`
	Types        int               `yaml:"types,omitempty"`
	Distribution []float64         `yaml:"distribution,omitempty"`
	Points       []int             `yaml:"points,omitempty"`
	Size         YAMLSize          `yaml:"size,omitempty"`
	Layout       []string          `yaml:"layout,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions when no layout is given.
type YAMLSize struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (*core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return yl.ToLevel()
}

// ToLevel applies defaults and converts the file into a validated level.
func (yl YAMLLevel) ToLevel() (*core.Level, error) {
	if yl.ID == "" {
		return nil, core.ValidationError{Code: "NO_ID", Message: "level has no id"}
	}

	w, h := yl.Size.Width, yl.Size.Height
	var grid [][]string
	if len(yl.Layout) > 0 {
		for y, row := range yl.Layout {
			tokens := strings.Fields(row)
			if y > 0 && len(tokens) != len(grid[0]) {
				return nil, core.ValidationError{
					Code:    "BAD_LAYOUT",
					Message: fmt.Sprintf("row %d has %d cells, want %d", y, len(tokens), len(grid[0])),
				}
			}
			grid = append(grid, tokens)
		}
		w, h = len(grid[0]), len(grid)
	}

	lvl := core.NewLevel(yl.ID, w, h)
	if yl.Name != "" {
		lvl.Name = yl.Name
	}
	if yl.Moves != 0 {
		lvl.MaxMoves = yl.Moves
	}
	if len(yl.Stars) > 0 {
		if len(yl.Stars) != 3 {
			return nil, core.ValidationError{Code: "BAD_STARS", Message: fmt.Sprintf("want 3 star thresholds, got %d", len(yl.Stars))}
		}
		copy(lvl.Stars[:], yl.Stars)
	}

	types := yl.Types
	switch {
	case len(yl.Distribution) > 0:
		types = len(yl.Distribution)
		lvl.Distribution = yl.Distribution
	case types > 0:
		lvl.Distribution = core.UniformDistribution(types)
	default:
		types = core.DefaultNumTypes
	}
	if len(yl.Points) > 0 {
		lvl.Points = yl.Points
	} else {
		lvl.Points = core.UniformPoints(types, core.DefaultPoints)
	}

	for y, row := range grid {
		for x, tok := range row {
			switch tok {
			case "x", "X":
				lvl.SetHole(x, y)
			case ".", "-":
			default:
				t, err := strconv.Atoi(tok)
				if err != nil {
					return nil, core.ValidationError{
						Code:    "BAD_LAYOUT",
						Message: fmt.Sprintf("cell %q at (%d,%d) is not x, . or a piece type", tok, x, y),
					}
				}
				lvl.SetPreset(x, y, core.PieceType(t))
			}
		}
	}

	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	return lvl, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
