package template

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// hanziGrid is the coordinate extent of hanzi-writer character data.
// Medians arrive on a 0-1024 integer grid and are normalized to [0,1].
const hanziGrid = 1024.0

// SourceHanziWriter tags templates loaded from hanzi-writer data files.
const SourceHanziWriter = "hanzi-writer-data"

// characterFile is the on-disk hanzi-writer data format: SVG outline paths
// for rendering and median trajectories for scoring.
type characterFile struct {
	Character string         `json:"character"`
	Strokes   []string       `json:"strokes"`
	Medians   [][][2]float64 `json:"medians"`
}

// DirSource loads hanzi-writer-format character JSON files from a local
// directory, one file per glyph (<glyph>.json).
type DirSource struct {
	dir string
}

// NewDirSource creates a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Load implements Source.
func (s *DirSource) Load(_ context.Context, glyph string) (*types.Character, error) {
	path := filepath.Join(s.dir, glyph+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, glyph)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}

	if err := validateCharacterData(data); err != nil {
		return nil, fmt.Errorf("invalid character data for %q: %w", glyph, err)
	}

	return ParseHanziWriter(glyph, data)
}

// ParseHanziWriter decodes hanzi-writer character data and normalizes its
// 1024-grid median coordinates to the [0,1] box.
func ParseHanziWriter(glyph string, data []byte) (*types.Character, error) {
	var file characterFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse character data for %q: %w", glyph, err)
	}
	if len(file.Medians) == 0 {
		return nil, fmt.Errorf("character data for %q has no medians", glyph)
	}

	medians := make([]types.Stroke, len(file.Medians))
	for i, raw := range file.Medians {
		if len(raw) == 0 {
			return nil, fmt.Errorf("character data for %q: median %d is empty", glyph, i)
		}
		stroke := make(types.Stroke, len(raw))
		for j, p := range raw {
			stroke[j] = types.Point{X: p[0] / hanziGrid, Y: p[1] / hanziGrid}
		}
		medians[i] = stroke
	}

	return &types.Character{
		Glyph:    glyph,
		Source:   SourceHanziWriter,
		Medians:  medians,
		Outlines: file.Strokes,
	}, nil
}
