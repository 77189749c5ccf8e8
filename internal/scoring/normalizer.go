// Package scoring converts raw alignment distances into bounded,
// human-meaningful scores and aggregates per-stroke results into a
// character-level breakdown.
package scoring

import (
	"math"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// Normalize maps a DTW distance to a score in [0,100] via exponential
// decay: score = 100 * exp(-distance/maxDistance). Distance 0 scores 100;
// distance equal to maxDistance scores about 36.8. Negative distances are
// treated as 0.
func Normalize(distance, maxDistance float64) float64 {
	if distance < 0 {
		distance = 0
	}

	score := 100.0 * math.Exp(-distance/maxDistance)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CharacterScore aggregates per-stroke similarity scores (each in [0,1])
// into a character-level breakdown. When expected is non-nil and the actual
// count differs, a count penalty is subtracted from the total: missing
// strokes cost up to cfg.MissingStrokePenalty points, extra strokes up to
// cfg.ExtraStrokePenalty. An empty input yields an all-zero breakdown.
func CharacterScore(strokeScores []float64, expected *int, cfg config.Scoring) types.ScoreBreakdown {
	if len(strokeScores) == 0 {
		return types.ScoreBreakdown{ExpectedCount: expected}
	}

	count := len(strokeScores)
	sum := 0.0
	minScore := strokeScores[0]
	maxScore := strokeScores[0]
	perfect := 0
	for _, s := range strokeScores {
		sum += s
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
		if s >= cfg.PerfectThreshold {
			perfect++
		}
	}
	average := sum / float64(count)

	total := average * 100.0

	if expected != nil && *expected > 0 && count != *expected {
		ratio := float64(count) / float64(*expected)
		var penalty float64
		if ratio < 1 {
			penalty = (1 - ratio) * cfg.MissingStrokePenalty
		} else {
			penalty = (ratio - 1) * cfg.ExtraStrokePenalty
		}
		total -= penalty
	}

	if total < 0 {
		total = 0
	} else if total > 100 {
		total = 100
	}

	return types.ScoreBreakdown{
		TotalScore:     total,
		StrokeCount:    count,
		ExpectedCount:  expected,
		AverageScore:   average,
		MinScore:       minScore,
		MaxScore:       maxScore,
		PerfectStrokes: perfect,
	}
}
