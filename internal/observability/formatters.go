// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxStrokesToShow is the default number of strokes to display in detail
	maxStrokesToShow = 12
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of a comprehensive scoring result.
func (p *Printer) PrintResult(glyph string, result *types.Result) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total:        %.1f (%s)\n", result.TotalScore, result.Grade))
	sb.WriteString(fmt.Sprintf("Handwriting:  %.1f\n", result.HandwritingScore))
	sb.WriteString(fmt.Sprintf("Posture:      %.1f\n", result.PostureScore))
	if result.Code != "" {
		sb.WriteString(fmt.Sprintf("Code:         %s\n", result.Code))
	}
	sb.WriteString("\n")

	if len(result.StrokeAnalysis) > 0 {
		sb.WriteString("Strokes:\n")
		count := min(len(result.StrokeAnalysis), maxStrokesToShow)
		for i := 0; i < count; i++ {
			stroke := result.StrokeAnalysis[i]
			sb.WriteString(fmt.Sprintf("  %2d: %.1f (similarity %.3f)", stroke.StrokeIndex+1, stroke.Score, stroke.Similarity))
			if len(stroke.Issues) > 0 {
				sb.WriteString(" !")
			}
			sb.WriteString("\n")
		}
		if len(result.StrokeAnalysis) > maxStrokesToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.StrokeAnalysis)-maxStrokesToShow))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Feedback: %s", result.Feedback))

	p.printBox(fmt.Sprintf("Score: %s", glyph), sb.String())
}

// PrintVerdict outputs a human-readable summary of a stroke-order verdict.
func (p *Printer) PrintVerdict(glyph string, verdict types.OrderVerdict) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Valid:           %v\n", verdict.IsValid))
	sb.WriteString(fmt.Sprintf("Score:           %.3f\n", verdict.Score))
	sb.WriteString(fmt.Sprintf("Count match:     %v\n", verdict.StrokeCountMatch))
	sb.WriteString(fmt.Sprintf("Order penalty:   %.3f\n", verdict.OrderPenalty))
	sb.WriteString(fmt.Sprintf("Direction match: %.0f%%", verdict.DirectionMatchRate*100))

	p.printBox(fmt.Sprintf("Stroke order: %s", glyph), sb.String())
}

// PrintTemplate outputs a summary of a reference template.
func (p *Printer) PrintTemplate(character *types.Character) {
	if character == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:  %s\n", character.Source))
	sb.WriteString(fmt.Sprintf("Strokes: %d\n", character.StrokeCount()))
	for i, median := range character.Medians {
		if i >= maxStrokesToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(character.Medians)-maxStrokesToShow))
			break
		}
		first := median[0]
		last := median[len(median)-1]
		sb.WriteString(fmt.Sprintf("  %2d: %d points (%.2f,%.2f)→(%.2f,%.2f)\n",
			i+1, len(median), first.X, first.Y, last.X, last.Y))
	}

	p.printBox(fmt.Sprintf("Template: %s", character.Glyph), sb.String())
}
