package strokeorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// threeStrokeTemplate returns distinct horizontal, vertical and diagonal
// strokes, each with an unambiguous direction.
func threeStrokeTemplate() []types.Stroke {
	return []types.Stroke{
		{{X: 0.1, Y: 0.3}, {X: 0.9, Y: 0.3}},
		{{X: 0.5, Y: 0.1}, {X: 0.5, Y: 0.9}},
		{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.9}},
	}
}

func TestValidate_NoUserStrokes(t *testing.T) {
	verdict, err := Validate(threeStrokeTemplate(), nil, config.DefaultScoring())
	require.NoError(t, err)

	assert.False(t, verdict.IsValid)
	assert.Zero(t, verdict.Score)
	assert.False(t, verdict.StrokeCountMatch)
	assert.InDelta(t, 1.0, verdict.OrderPenalty, 1e-9)
}

func TestValidate_StrokeCountMismatch(t *testing.T) {
	template := threeStrokeTemplate()[:2]
	user := []types.Stroke{{{X: 0, Y: 0}, {X: 1, Y: 1}}}

	verdict, err := Validate(template, user, config.DefaultScoring())
	require.NoError(t, err)

	assert.False(t, verdict.IsValid)
	assert.False(t, verdict.StrokeCountMatch)
	assert.InDelta(t, 0.3, verdict.Score, 1e-9)
	assert.InDelta(t, 0.5, verdict.OrderPenalty, 1e-9)
	assert.Zero(t, verdict.DirectionMatchRate)
}

func TestValidate_PerfectTrace(t *testing.T) {
	template := threeStrokeTemplate()

	verdict, err := Validate(template, template, config.DefaultScoring())
	require.NoError(t, err)

	assert.True(t, verdict.IsValid)
	assert.True(t, verdict.StrokeCountMatch)
	assert.Zero(t, verdict.OrderPenalty)
	assert.InDelta(t, 1.0, verdict.DirectionMatchRate, 1e-9)
	assert.InDelta(t, 1.0, verdict.Score, 1e-9)
}

func TestValidate_SwappedStrokes(t *testing.T) {
	template := []types.Stroke{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 0}, {X: 0, Y: 1}},
	}
	user := []types.Stroke{template[1], template[0]}

	verdict, err := Validate(template, user, config.DefaultScoring())
	require.NoError(t, err)

	// Both best matches land off-diagonal: full penalty factor accumulated.
	assert.InDelta(t, 0.3, verdict.OrderPenalty, 1e-9)
	assert.False(t, verdict.IsValid)
	assert.Less(t, verdict.Score, 0.5)
}

func TestValidate_LowSimilarityHalved(t *testing.T) {
	template := []types.Stroke{
		{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}},
	}
	// Same order and direction, but traced far from the template.
	user := []types.Stroke{
		{{X: 0.1, Y: 0.9}, {X: 0.9, Y: 0.9}},
	}

	cfg := config.DefaultScoring()
	verdict, err := Validate(template, user, cfg)
	require.NoError(t, err)

	matrix, err := SimilarityMatrix(template, user, cfg.MaxDistance)
	require.NoError(t, err)
	require.Less(t, matrix[0][0], cfg.Order.LowSimilarityCutoff)

	// Halved diagonal mean, direction boost still applies (rate 1 > 0.5).
	expected := matrix[0][0]*cfg.Order.LowSimilarityFactor + cfg.Order.DirectionBoost
	assert.InDelta(t, expected, verdict.Score, 1e-9)
}

func TestSimilarityMatrix_Shape(t *testing.T) {
	template := threeStrokeTemplate()
	user := template[:2]

	matrix, err := SimilarityMatrix(template, user, 1.0)
	require.NoError(t, err)
	require.Len(t, matrix, 3)
	for _, row := range matrix {
		assert.Len(t, row, 2)
	}
	assert.InDelta(t, 1.0, matrix[0][0], 1e-9)
	assert.InDelta(t, 1.0, matrix[1][1], 1e-9)
}

func TestDetectDirection(t *testing.T) {
	dominance := config.DefaultScoring().Order.DirectionDominance

	tests := []struct {
		name   string
		stroke types.Stroke
		want   Direction
	}{
		{
			name:   "horizontal",
			stroke: types.Stroke{{X: 0, Y: 0.3}, {X: 1, Y: 0.35}},
			want:   DirectionHorizontal,
		},
		{
			name:   "vertical",
			stroke: types.Stroke{{X: 0.5, Y: 0}, {X: 0.5, Y: 1}},
			want:   DirectionVertical,
		},
		{
			name:   "diagonal down right",
			stroke: types.Stroke{{X: 0.1, Y: 0.1}, {X: 0.6, Y: 0.7}},
			want:   DirectionDiagonalDownRight,
		},
		{
			name:   "diagonal down left",
			stroke: types.Stroke{{X: 0.9, Y: 0.1}, {X: 0.3, Y: 0.7}},
			want:   DirectionDiagonalDownLeft,
		},
		{
			name:   "too small to classify",
			stroke: types.Stroke{{X: 0.5, Y: 0.5}, {X: 0.52, Y: 0.53}},
			want:   DirectionUnknown,
		},
		{
			name:   "single point",
			stroke: types.Stroke{{X: 0.5, Y: 0.5}},
			want:   DirectionUnknown,
		},
		{
			name:   "strongly curved hook",
			stroke: types.Stroke{{X: 0, Y: 0}, {X: 0.5, Y: 0.5}, {X: 1, Y: 0}},
			want:   DirectionUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDirection(tt.stroke, dominance))
		})
	}
}
