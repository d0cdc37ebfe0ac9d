package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
)

func TestNewLevelDefaults(t *testing.T) {
	l := core.NewLevel("01", 9, 9)

	require.NoError(t, l.Validate())
	assert.Equal(t, 81, l.ValidCells())
	assert.Equal(t, core.DefaultNumTypes, l.NumTypes())
	assert.Equal(t, core.DefaultPoints, l.PointsFor(3))
	assert.Zero(t, l.PointsFor(42))
	assert.True(t, l.IsValidCell(8, 8))
	assert.False(t, l.IsValidCell(9, 0))
	assert.False(t, l.IsValidCell(-1, 0))

	l.SetPreset(2, 2, 4)
	typ, ok := l.InitialPieceAt(2, 2)
	assert.True(t, ok)
	assert.Equal(t, core.PieceType(4), typ)

	l.SetHole(2, 2)
	_, ok = l.InitialPieceAt(2, 2)
	assert.False(t, ok, "a hole drops its preset")
	assert.False(t, l.IsValidCell(2, 2))
}

func TestProbabilityDistributionIsCopy(t *testing.T) {
	l := core.NewLevel("01", 3, 3)
	d := l.ProbabilityDistribution()
	d[0] = 5
	assert.NotEqual(t, 5.0, l.Distribution[0])
}

func TestLevelValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(l *core.Level)
		code   string
	}{
		{"NoValidCells", func(l *core.Level) {
			for y := 0; y < l.H; y++ {
				for x := 0; x < l.W; x++ {
					l.SetHole(x, y)
				}
			}
		}, "NO_VALID_CELLS"},
		{"EmptyDistribution", func(l *core.Level) { l.Distribution = nil; l.Points = nil }, "NO_TYPES"},
		{"SumTooLow", func(l *core.Level) { l.Distribution = []float64{0.5, 0.4}; l.Points = []int{1, 1} }, "BAD_DISTRIBUTION"},
		{"NegativeProbability", func(l *core.Level) { l.Distribution = []float64{1.5, -0.5}; l.Points = []int{1, 1} }, "BAD_DISTRIBUTION"},
		{"NegativePoints", func(l *core.Level) { l.Points[2] = -1 }, "NEGATIVE_POINTS"},
		{"PointsLength", func(l *core.Level) { l.Points = l.Points[:3] }, "POINTS_LENGTH"},
		{"PresetType", func(l *core.Level) { l.SetPreset(0, 0, 6) }, "PRESET_TYPE"},
		{"PresetOnHole", func(l *core.Level) {
			l.SetHole(1, 1)
			l.Presets[core.P(1, 1)] = 2
		}, "PRESET_ON_HOLE"},
		{"PresetMatch", func(l *core.Level) {
			l.SetPreset(0, 3, 1)
			l.SetPreset(1, 3, 1)
			l.SetPreset(2, 3, 1)
		}, "PRESET_MATCH"},
		{"MovesZero", func(l *core.Level) { l.MaxMoves = 0 }, "BAD_MOVES"},
		{"MovesTooMany", func(l *core.Level) { l.MaxMoves = 100 }, "BAD_MOVES"},
		{"StarsNotIncreasing", func(l *core.Level) { l.Stars = [3]int{100, 100, 300} }, "BAD_STARS"},
		{"StarsOutOfRange", func(l *core.Level) { l.Stars = [3]int{1, 200, 300} }, "BAD_STARS"},
		{"MaskSize", func(l *core.Level) { l.Mask = l.Mask[:10] }, "BAD_SIZE"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := core.NewLevel("v", 5, 5)
			tc.mutate(l)

			err := l.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, core.ErrInvalidConfig), "error %v should be a config error", err)

			var ve core.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.code, ve.Code)
			assert.Contains(t, err.Error(), "["+tc.code+"]")
		})
	}
}

func TestValidateConfigToleratesRounding(t *testing.T) {
	l := core.NewLevel("r", 4, 4)
	l.Distribution = []float64{0.1666667, 0.1666667, 0.1666667, 0.1666667, 0.1666666, 0.1666666}
	assert.NoError(t, core.ValidateConfig(l))

	// Presets that do not line up three are fine.
	l.SetPreset(0, 0, 1)
	l.SetPreset(1, 0, 1)
	l.SetPreset(2, 0, 2)
	assert.NoError(t, core.ValidateConfig(l))
}
