package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/history"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/template"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// readStrokes loads user strokes from a JSON file holding an array of
// strokes, each an array of [x, y] pairs in normalized [0,1] coordinates.
func readStrokes(path string) ([]types.Stroke, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strokes file %s: %w", path, err)
	}

	var raw [][][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse strokes JSON: %w", err)
	}

	strokes := make([]types.Stroke, len(raw))
	for i, rawStroke := range raw {
		stroke := make(types.Stroke, len(rawStroke))
		for j, p := range rawStroke {
			stroke[j] = types.Point{X: p[0], Y: p[1]}
		}
		strokes[i] = stroke
	}
	return strokes, nil
}

// parsePosture parses a "spine,eye_distance,head_tilt" triplet. An empty
// value means no posture sample was captured.
func parsePosture(value string) (*types.PostureSample, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("posture must be spine,eye_distance,head_tilt (e.g. 8,42,5), got %q", value)
	}
	numbers := make([]float64, 3)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid posture value %q: %w", part, err)
		}
		numbers[i] = v
	}
	return &types.PostureSample{
		SpineAngle:        numbers[0],
		EyeScreenDistance: numbers[1],
		HeadTilt:          numbers[2],
	}, nil
}

// buildSource assembles the template source chain: custom templates from
// the database (when connected) take precedence over the hanzi-writer data
// directory.
func buildSource(cfg config.Config, store *history.Store) (template.Source, error) {
	var sources template.Multi
	if store != nil {
		sources = append(sources, store)
	}
	if cfg.TemplateDir != "" {
		sources = append(sources, template.NewDirSource(cfg.TemplateDir))
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no template source configured: set template_dir in the config file or SMARTPEN_TEMPLATE_DIR")
	}
	return sources, nil
}

// connectStore opens the history store when a database URL is configured.
// Returns nil without error when persistence is disabled.
func connectStore(ctx context.Context, cfg config.Config) (*history.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}
	store, err := history.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
