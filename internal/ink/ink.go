// Package ink defines the boundary contract for image-to-trajectory
// extraction collaborators and the minimum-signal validation applied to
// their output before it reaches scoring.
package ink

import (
	"context"
	"errors"
	"math"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// ErrUnavailable is returned when no extractor is wired or the extraction
// backend cannot serve. This is always an explicit outcome for the caller;
// the core never falls back to a stand-in predictor. Wiring a fake belongs
// to the deployment or test harness.
var ErrUnavailable = errors.New("ink: extraction service unavailable")

// ErrNoInk is returned when an image yields too little signal to score:
// a blank page, or a photo rotated or cropped so the writing is lost.
var ErrNoInk = errors.New("ink: no scoreable writing detected")

// Extractor converts a handwriting photo into stroke trajectories in the
// normalized [0,1] box. Implementations live outside this module.
type Extractor interface {
	Extract(ctx context.Context, image []byte) ([]types.Stroke, error)
}

// Minimum-signal thresholds for extracted strokes.
const (
	// MinStrokePoints drops strokes too short to carry shape.
	MinStrokePoints = 2
	// MinTotalPoints is the least signal a whole character may carry.
	MinTotalPoints = 8
	// MinSpan is the required bounding-box extent on at least one axis,
	// as a fraction of the normalized box (~5% of width/height).
	MinSpan = 0.05
)

// ValidateStrokes filters extractor output and rejects input that cannot be
// scored meaningfully. Strokes with fewer than MinStrokePoints points are
// dropped; the remainder must carry at least MinTotalPoints finite points
// spanning at least MinSpan of the box on one axis.
func ValidateStrokes(strokes []types.Stroke) ([]types.Stroke, error) {
	if len(strokes) == 0 {
		return nil, ErrNoInk
	}

	filtered := make([]types.Stroke, 0, len(strokes))
	for _, s := range strokes {
		if len(s) >= MinStrokePoints {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) == 0 {
		return nil, ErrNoInk
	}

	total := 0
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range filtered {
		for _, p := range s {
			if !isFinite(p.X) || !isFinite(p.Y) {
				return nil, ErrNoInk
			}
			total++
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if total < MinTotalPoints {
		return nil, ErrNoInk
	}

	if maxX-minX < MinSpan && maxY-minY < MinSpan {
		return nil, ErrNoInk
	}

	return filtered, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
