// Package strokeorder validates that user strokes follow the reference
// stroke order, direction and count, producing a composite verdict that
// gates comprehensive scoring.
package strokeorder

import (
	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/dtw"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// SimilarityMatrix computes the pairwise similarity between every template
// stroke and every user stroke: matrix[i][j] is the similarity of template
// stroke i to user stroke j.
func SimilarityMatrix(template, user []types.Stroke, maxDistance float64) ([][]float64, error) {
	matrix := make([][]float64, len(template))
	for i := range template {
		matrix[i] = make([]float64, len(user))
		for j := range user {
			similarity, _, err := dtw.CompareStrokes(template[i], user[j], maxDistance)
			if err != nil {
				return nil, err
			}
			matrix[i][j] = similarity
		}
	}
	return matrix, nil
}

// Validate checks the user's stroke count, order and direction against the
// template and derives a composite verdict.
//
// A stroke-count mismatch is a gating failure, not a quality failure: the
// verdict reports the fixed mismatch score before any alignment is computed.
// On a count match, each template stroke's best matrix match should be its
// own index; every inversion accumulates PenaltyFactor/N of order penalty.
// The diagonal mean is halved when it falls below the low-similarity cutoff,
// and matching stroke directions can boost the final score by up to
// DirectionBoost.
func Validate(template, user []types.Stroke, cfg config.Scoring) (types.OrderVerdict, error) {
	rules := cfg.Order

	if len(user) == 0 {
		return types.OrderVerdict{
			IsValid:      false,
			Score:        0,
			OrderPenalty: 1,
		}, nil
	}

	if len(user) != len(template) {
		return types.OrderVerdict{
			IsValid:          false,
			Score:            rules.MismatchScore,
			StrokeCountMatch: false,
			OrderPenalty:     rules.MismatchPenalty,
		}, nil
	}

	matrix, err := SimilarityMatrix(template, user, cfg.MaxDistance)
	if err != nil {
		return types.OrderVerdict{}, err
	}

	n := len(template)

	orderPenalty := 0.0
	diagonalSum := 0.0
	for i := 0; i < n; i++ {
		best := 0
		for j := 1; j < n; j++ {
			if matrix[i][j] > matrix[i][best] {
				best = j
			}
		}
		if best != i {
			orderPenalty += rules.PenaltyFactor / float64(n)
		}
		diagonalSum += matrix[i][i]
	}
	avgSimilarity := diagonalSum / float64(n)

	// Correct order with low diagonal similarity means the strokes were
	// traced far from the template; penalize steeply so lucky order
	// matches cannot mask bad tracing.
	if avgSimilarity < rules.LowSimilarityCutoff {
		avgSimilarity *= rules.LowSimilarityFactor
	}

	directionMatches := 0
	for i := 0; i < n; i++ {
		templateDir := DetectDirection(template[i], rules.DirectionDominance)
		userDir := DetectDirection(user[i], rules.DirectionDominance)
		if templateDir == userDir && templateDir != DirectionUnknown {
			directionMatches++
		}
	}
	directionMatchRate := float64(directionMatches) / float64(n)

	score := avgSimilarity * (1 - orderPenalty)
	if directionMatchRate > rules.DirectionBoostCutoff {
		score += rules.DirectionBoost * directionMatchRate
	}
	if score > 1 {
		score = 1
	} else if score < 0 {
		score = 0
	}

	return types.OrderVerdict{
		IsValid:            score >= rules.ValidScore && orderPenalty < rules.ValidPenalty,
		Score:              score,
		StrokeCountMatch:   true,
		OrderPenalty:       orderPenalty,
		DirectionMatchRate: directionMatchRate,
	}, nil
}
