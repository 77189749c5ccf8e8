package strokeorder

import (
	"math"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// Direction is the coarse classification of a stroke's travel, derived from
// its endpoint displacement.
type Direction string

const (
	DirectionHorizontal        Direction = "horizontal"
	DirectionVertical          Direction = "vertical"
	DirectionDiagonalDownRight Direction = "diagonal_down_right"
	DirectionDiagonalDownLeft  Direction = "diagonal_down_left"
	DirectionUnknown           Direction = "unknown"
)

const (
	// minDirectionSpan is the endpoint displacement (L1) below which a
	// stroke is too small to classify.
	minDirectionSpan = 0.1
	// maxCurvatureRatio is the deviation-to-length ratio above which a
	// stroke is considered curved rather than directional.
	maxCurvatureRatio = 0.2
	// diagonalFloor is the minimum per-axis displacement ratio for a
	// diagonal classification.
	diagonalFloor = 0.3
)

// DetectDirection classifies a stroke's primary direction from its endpoint
// displacement. dominance is the displacement-ratio threshold for the
// horizontal and vertical classes. Strokes that are too short, or whose
// middle points deviate strongly from the endpoint chord, classify as
// unknown.
func DetectDirection(stroke types.Stroke, dominance float64) Direction {
	if len(stroke) < 2 {
		return DirectionUnknown
	}

	start := stroke[0]
	end := stroke[len(stroke)-1]
	dx := math.Abs(end.X - start.X)
	dy := math.Abs(end.Y - start.Y)
	total := dx + dy

	if total < minDirectionSpan {
		return DirectionUnknown
	}

	// Strongly curved strokes (hooks, bends) have no single direction.
	if len(stroke) > 2 && dx > 1e-3 {
		maxDeviation := 0.0
		chord := math.Hypot(end.X-start.X, end.Y-start.Y)
		if chord > 1e-3 {
			for _, p := range stroke[1 : len(stroke)-1] {
				num := math.Abs((end.Y-start.Y)*p.X - (end.X-start.X)*p.Y + end.X*start.Y - end.Y*start.X)
				if d := num / chord; d > maxDeviation {
					maxDeviation = d
				}
			}
		}
		if maxDeviation/total > maxCurvatureRatio {
			return DirectionUnknown
		}
	}

	horizontalRatio := dx / total
	verticalRatio := dy / total

	switch {
	case horizontalRatio >= dominance:
		return DirectionHorizontal
	case verticalRatio >= dominance:
		return DirectionVertical
	case horizontalRatio > diagonalFloor && verticalRatio > diagonalFloor:
		sameSign := (end.X > start.X && end.Y > start.Y) || (end.X < start.X && end.Y < start.Y)
		if sameSign {
			return DirectionDiagonalDownRight
		}
		return DirectionDiagonalDownLeft
	default:
		return DirectionUnknown
	}
}
