package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/template"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// SourceCustom tags templates created by users rather than loaded from
// hanzi-writer data.
const SourceCustom = "custom"

// SaveTemplate stores a user-created character template. Medians are stored
// as a JSON column; the newest template for a glyph wins on load.
func (s *Store) SaveTemplate(ctx context.Context, character *types.Character) (uuid.UUID, error) {
	if len(character.Medians) == 0 {
		return uuid.Nil, fmt.Errorf("cannot save template for %q without medians", character.Glyph)
	}

	medians, err := json.Marshal(character.Medians)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal medians: %w", err)
	}
	outlines, err := json.Marshal(character.Outlines)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal outlines: %w", err)
	}

	id := uuid.New()
	_, err = s.pool.Exec(ctx,
		`INSERT INTO custom_characters (id, glyph, medians, outlines)
		 VALUES ($1, $2, $3, $4)`,
		id, character.Glyph, medians, outlines,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save template: %w", err)
	}
	return id, nil
}

// Load implements template.Source over the custom_characters table,
// returning the most recently saved template for the glyph.
func (s *Store) Load(ctx context.Context, glyph string) (*types.Character, error) {
	var mediansJSON, outlinesJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT medians, outlines
		 FROM custom_characters
		 WHERE glyph = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		glyph,
	).Scan(&mediansJSON, &outlinesJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", template.ErrNotFound, glyph)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", template.ErrUnavailable, err)
	}

	var medians []types.Stroke
	if err := json.Unmarshal(mediansJSON, &medians); err != nil {
		return nil, fmt.Errorf("failed to unmarshal medians for %q: %w", glyph, err)
	}
	var outlines []string
	if len(outlinesJSON) > 0 {
		if err := json.Unmarshal(outlinesJSON, &outlines); err != nil {
			return nil, fmt.Errorf("failed to unmarshal outlines for %q: %w", glyph, err)
		}
	}

	return &types.Character{
		Glyph:    glyph,
		Source:   SourceCustom,
		Medians:  medians,
		Outlines: outlines,
	}, nil
}
