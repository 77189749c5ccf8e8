// Package types provides type definitions for structured data used throughout the SmartPen scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Point is a pen position in the normalized [0,1]x[0,1] character box.
// Coordinates outside that range indicate an upstream extraction error.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous pen-down trajectory, ordered from pen-down to pen-up.
type Stroke []Point

// Character is a reference template for a single glyph. Medians are the
// stroke trajectories used for scoring, indexed in canonical stroke order.
// Outlines carry the SVG path strings rendering clients use to draw the
// glyph; scoring never reads them.
type Character struct {
	Glyph    string   `json:"glyph"`
	Source   string   `json:"source"`
	Medians  []Stroke `json:"medians"`
	Outlines []string `json:"outlines,omitempty"`
}

// StrokeCount returns the canonical number of strokes in the template.
func (c *Character) StrokeCount() int {
	return len(c.Medians)
}
