package evaluate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/ink"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/template"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// fakeSource serves templates from an in-memory map.
type fakeSource map[string]*types.Character

func (f fakeSource) Load(_ context.Context, glyph string) (*types.Character, error) {
	character, ok := f[glyph]
	if !ok {
		return nil, fmt.Errorf("%w: %q", template.ErrNotFound, glyph)
	}
	return character, nil
}

// fakeExtractor returns canned strokes or a canned error.
type fakeExtractor struct {
	strokes []types.Stroke
	err     error
}

func (f *fakeExtractor) Extract(context.Context, []byte) ([]types.Stroke, error) {
	return f.strokes, f.err
}

// crossCharacter is a two-stroke cross: one horizontal, one vertical.
func crossCharacter() *types.Character {
	return &types.Character{
		Glyph:  "十",
		Source: "hanzi-writer-data",
		Medians: []types.Stroke{
			{{X: 0.1, Y: 0.5}, {X: 0.9, Y: 0.5}},
			{{X: 0.5, Y: 0.1}, {X: 0.5, Y: 0.9}},
		},
	}
}

func newTestEvaluator() *Evaluator {
	return New(fakeSource{"十": crossCharacter()}, config.DefaultScoring())
}

func TestEvaluate_PerfectTrace(t *testing.T) {
	e := newTestEvaluator()

	result, err := e.Evaluate(context.Background(), &types.EvaluationRequest{
		Character:   "十",
		UserStrokes: crossCharacter().Medians,
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.TotalScore, 1e-9)
	assert.InDelta(t, 100.0, result.HandwritingScore, 1e-9)
	assert.InDelta(t, 100.0, result.PostureScore, 1e-9)
	assert.Equal(t, types.GradeExcellent, result.Grade)
	assert.Empty(t, result.Code)
	assert.Nil(t, result.PostureAnalysis)
	assert.True(t, result.OrderVerdict.IsValid)

	require.Len(t, result.StrokeAnalysis, 2)
	for i, analysis := range result.StrokeAnalysis {
		assert.Equal(t, i, analysis.StrokeIndex)
		assert.InDelta(t, 1.0, analysis.Similarity, 1e-9)
		assert.InDelta(t, 100.0, analysis.Score, 1e-9)
		assert.Empty(t, analysis.Issues)
	}

	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 2, result.Breakdown.PerfectStrokes)
	assert.Contains(t, result.Feedback, "beautifully written")
}

func TestEvaluate_StrokeCountMismatchGates(t *testing.T) {
	e := newTestEvaluator()

	result, err := e.Evaluate(context.Background(), &types.EvaluationRequest{
		Character:   "十",
		UserStrokes: crossCharacter().Medians[:1],
	})
	require.NoError(t, err)

	assert.Equal(t, types.CodeStrokeOrderError, result.Code)
	assert.Equal(t, types.GradeNeedsPractice, result.Grade)
	assert.Zero(t, result.TotalScore)
	assert.Zero(t, result.HandwritingScore)
	assert.Equal(t, "stroke order error", result.Feedback)
	assert.Empty(t, result.StrokeAnalysis)
	assert.Nil(t, result.Breakdown)

	assert.False(t, result.OrderVerdict.IsValid)
	assert.False(t, result.OrderVerdict.StrokeCountMatch)
	assert.InDelta(t, 0.3, result.OrderVerdict.Score, 1e-9)
	assert.InDelta(t, 0.5, result.OrderVerdict.OrderPenalty, 1e-9)
}

func TestEvaluate_CombinesPostureScore(t *testing.T) {
	e := newTestEvaluator()

	result, err := e.Evaluate(context.Background(), &types.EvaluationRequest{
		Character:   "十",
		UserStrokes: crossCharacter().Medians,
		Posture: &types.PostureSample{
			SpineAngle:        25,
			EyeScreenDistance: 40,
			HeadTilt:          5,
		},
	})
	require.NoError(t, err)

	// 100*0.7 + 70*0.3
	assert.InDelta(t, 91.0, result.TotalScore, 1e-9)
	assert.InDelta(t, 70.0, result.PostureScore, 1e-9)
	assert.Equal(t, types.GradeExcellent, result.Grade)

	require.NotNil(t, result.PostureAnalysis)
	assert.Equal(t, types.PostureCritical, result.PostureAnalysis.Level)
	assert.Contains(t, result.Feedback, "though ")
}

func TestEvaluate_InvalidRequest(t *testing.T) {
	e := newTestEvaluator()

	_, err := e.Evaluate(context.Background(), &types.EvaluationRequest{
		Character: "十",
	})
	require.Error(t, err)
}

func TestEvaluate_UnknownGlyph(t *testing.T) {
	e := newTestEvaluator()

	_, err := e.Evaluate(context.Background(), &types.EvaluationRequest{
		Character:   "水",
		UserStrokes: crossCharacter().Medians,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, template.ErrNotFound)
}

func TestGradeBands(t *testing.T) {
	e := New(nil, config.DefaultScoring())

	tests := []struct {
		total float64
		want  string
	}{
		{95, types.GradeExcellent},
		{90, types.GradeExcellent},
		{85, types.GradeGood},
		{80, types.GradeGood},
		{65, types.GradePass},
		{60, types.GradePass},
		{59.9, types.GradeNeedsPractice},
		{0, types.GradeNeedsPractice},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.grade(tt.total), "total %.1f", tt.total)
	}
}

func TestEvaluateImage_NoExtractor(t *testing.T) {
	e := newTestEvaluator()

	_, err := e.EvaluateImage(context.Background(), "十", []byte("jpeg"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ink.ErrUnavailable)
}

func TestEvaluateImage_ScoresExtractedStrokes(t *testing.T) {
	e := newTestEvaluator()
	e.Extractor = &fakeExtractor{strokes: []types.Stroke{
		{{X: 0.1, Y: 0.5}, {X: 0.3, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.7, Y: 0.5}, {X: 0.9, Y: 0.5}},
		{{X: 0.5, Y: 0.1}, {X: 0.5, Y: 0.3}, {X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.7}, {X: 0.5, Y: 0.9}},
	}}

	result, err := e.EvaluateImage(context.Background(), "十", []byte("jpeg"), nil)
	require.NoError(t, err)

	assert.Empty(t, result.Code)
	assert.Equal(t, types.GradeExcellent, result.Grade)
	assert.InDelta(t, 100.0, result.HandwritingScore, 1e-9)
}

func TestEvaluateImage_NoInk(t *testing.T) {
	e := newTestEvaluator()
	e.Extractor = &fakeExtractor{strokes: []types.Stroke{
		{{X: 0.5, Y: 0.5}},
	}}

	result, err := e.EvaluateImage(context.Background(), "十", []byte("jpeg"), nil)
	require.NoError(t, err)

	assert.Equal(t, types.CodeNoInk, result.Code)
	assert.Equal(t, types.GradeNeedsPractice, result.Grade)
	assert.Zero(t, result.TotalScore)
}
