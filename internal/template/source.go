// Package template provides reference-character template sources. A source
// resolves a glyph to its canonical stroke medians; the scoring core only
// ever consumes the resulting Character value.
package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// ErrNotFound is returned when a source has no template for the glyph.
var ErrNotFound = errors.New("template: character not found")

// ErrUnavailable is returned when a source exists but cannot currently
// serve templates. Callers must surface this outcome; substituting a
// stand-in template is a deployment decision, never made here.
var ErrUnavailable = errors.New("template: source unavailable")

// Source resolves a glyph to its reference template.
type Source interface {
	Load(ctx context.Context, glyph string) (*types.Character, error)
}

// Multi chains sources: each is tried in order and ErrNotFound falls
// through to the next. Any other error stops the chain.
type Multi []Source

// Load implements Source.
func (m Multi) Load(ctx context.Context, glyph string) (*types.Character, error) {
	for _, src := range m {
		character, err := src.Load(ctx, glyph)
		if err == nil {
			return character, nil
		}
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, glyph)
}
