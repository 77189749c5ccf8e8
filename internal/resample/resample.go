// Package resample converts variable-length stroke trajectories into
// fixed-length, arclength-uniform point sequences so that strokes of
// different sampling densities can be compared.
package resample

import (
	"math"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// degenerateLength is the total path length below which a stroke is treated
// as a single repeated point.
const degenerateLength = 1e-10

// Stroke resamples a stroke to exactly n points, evenly spaced by arclength
// along the original polyline. The first and last output points equal the
// original endpoints. Empty input returns an empty stroke; a single-point or
// zero-length stroke returns the first point repeated n times.
func Stroke(stroke types.Stroke, n int) types.Stroke {
	if len(stroke) == 0 || n <= 0 {
		return types.Stroke{}
	}

	if len(stroke) == 1 {
		return repeat(stroke[0], n)
	}

	// Cumulative arclength at each original point.
	cumdist := make([]float64, len(stroke))
	for i := 1; i < len(stroke); i++ {
		dx := stroke[i].X - stroke[i-1].X
		dy := stroke[i].Y - stroke[i-1].Y
		cumdist[i] = cumdist[i-1] + math.Hypot(dx, dy)
	}
	total := cumdist[len(cumdist)-1]

	// All points effectively coincide.
	if total < degenerateLength {
		return repeat(stroke[0], n)
	}

	out := make(types.Stroke, n)
	seg := 0
	for i := 0; i < n; i++ {
		var target float64
		if n == 1 {
			target = 0
		} else {
			target = total * float64(i) / float64(n-1)
		}

		// Advance to the segment containing the target arclength. Targets
		// are monotonically increasing, so the scan never restarts.
		for seg < len(cumdist)-2 && cumdist[seg+1] < target {
			seg++
		}

		segLen := cumdist[seg+1] - cumdist[seg]
		if segLen < degenerateLength {
			out[i] = stroke[seg]
			continue
		}
		t := (target - cumdist[seg]) / segLen
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		out[i] = types.Point{
			X: stroke[seg].X + t*(stroke[seg+1].X-stroke[seg].X),
			Y: stroke[seg].Y + t*(stroke[seg+1].Y-stroke[seg].Y),
		}
	}

	// Pin the endpoints so repeated resampling cannot drift them.
	// For n == 1 the single output point is the stroke start.
	out[n-1] = stroke[len(stroke)-1]
	out[0] = stroke[0]

	return out
}

// Strokes resamples every stroke of a character to the same point count.
func Strokes(strokes []types.Stroke, n int) []types.Stroke {
	if len(strokes) == 0 {
		return nil
	}
	out := make([]types.Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = Stroke(s, n)
	}
	return out
}

func repeat(p types.Point, n int) types.Stroke {
	out := make(types.Stroke, n)
	for i := range out {
		out[i] = p
	}
	return out
}
