// Package dtw computes time-warped distances between stroke trajectories.
// Dynamic time warping finds a monotonic correspondence between two point
// sequences of possibly different lengths, which makes it tolerant of the
// speed and sampling variation inherent in handwriting, unlike point-wise
// Euclidean comparison.
package dtw

import (
	"errors"
	"math"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// ErrEmptySequence is returned when either input sequence has no points.
var ErrEmptySequence = errors.New("dtw: cannot align an empty sequence")

// Distance returns the normalized DTW distance between two point sequences.
//
// The alignment uses the symmetric2 step pattern: diagonal, horizontal and
// vertical moves are all allowed, with the local cost counted twice on the
// diagonal step so that warped paths are not cheaper than straight ones.
// Point-to-point cost is city-block (L1), which is less sensitive to single
// outlier points than Euclidean. The cumulative path cost is normalized by
// the total path length n+m, making distances comparable across strokes of
// different sizes.
func Distance(a, b types.Stroke) (float64, error) {
	n := len(a)
	m := len(b)
	if n == 0 || m == 0 {
		return 0, ErrEmptySequence
	}

	// Cumulative cost matrix, filled row by row.
	cm := make([][]float64, n)
	for i := range cm {
		cm[i] = make([]float64, m)
	}

	cm[0][0] = cityBlock(a[0], b[0])
	for j := 1; j < m; j++ {
		cm[0][j] = cm[0][j-1] + cityBlock(a[0], b[j])
	}
	for i := 1; i < n; i++ {
		cm[i][0] = cm[i-1][0] + cityBlock(a[i], b[0])
	}

	for i := 1; i < n; i++ {
		for j := 1; j < m; j++ {
			cost := cityBlock(a[i], b[j])
			diag := cm[i-1][j-1] + 2*cost
			up := cm[i-1][j] + cost
			left := cm[i][j-1] + cost
			cm[i][j] = min3(diag, up, left)
		}
	}

	return cm[n-1][m-1] / float64(n+m), nil
}

// DistanceMatrix returns the pairwise DTW distance matrix for a set of
// strokes. The matrix is symmetric with a zero diagonal.
func DistanceMatrix(strokes []types.Stroke) ([][]float64, error) {
	k := len(strokes)
	if k == 0 {
		return nil, nil
	}

	matrix := make([][]float64, k)
	for i := range matrix {
		matrix[i] = make([]float64, k)
	}

	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			d, err := Distance(strokes[i], strokes[j])
			if err != nil {
				return nil, err
			}
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	return matrix, nil
}

// CompareStrokes compares a user stroke against a template stroke and
// returns (similarity, distance). Similarity is exponential decay of the
// distance, clamped to [0,1]: distance 0 gives 1.0, distance equal to
// maxDistance gives about 0.368.
func CompareStrokes(template, user types.Stroke, maxDistance float64) (float64, float64, error) {
	distance, err := Distance(template, user)
	if err != nil {
		return 0, 0, err
	}

	similarity := math.Exp(-distance / maxDistance)
	if similarity > 1 {
		similarity = 1
	} else if similarity < 0 {
		similarity = 0
	}

	return similarity, distance, nil
}

func cityBlock(p, q types.Point) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}

func min3(a, b, c float64) float64 {
	if a <= b && a <= c {
		return a
	}
	if b <= c {
		return b
	}
	return c
}
