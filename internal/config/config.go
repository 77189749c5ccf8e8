// Package config provides configuration loading and validation for the CLI
// and the scoring engine. Every tuning constant the engine branches on lives
// here, so thresholds can be adjusted without touching control flow.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from a YAML file. All fields
// are optional; missing values fall back to defaults or environment variables.
type Config struct {
	// TemplateDir is the directory holding hanzi-writer-format character
	// JSON files. Falls back to SMARTPEN_TEMPLATE_DIR.
	TemplateDir string `yaml:"template_dir"`
	// DatabaseURL is the PostgreSQL connection string for practice history
	// and custom templates. Falls back to DATABASE_URL. Empty disables
	// persistence.
	DatabaseURL string `yaml:"database_url"`
	// Scoring holds the engine tuning parameters.
	Scoring Scoring `yaml:"scoring"`
}

// Scoring holds every tunable constant of the scoring engine.
type Scoring struct {
	// ResamplePoints is the fixed per-stroke point count used before
	// alignment. 20-30 keeps alignment cost small without losing shape.
	ResamplePoints int `yaml:"resample_points"`
	// MaxDistance is the reference DTW distance for exponential decay:
	// similarity = exp(-distance/MaxDistance).
	MaxDistance float64 `yaml:"max_distance"`
	// PerfectThreshold is the similarity at or above which a stroke counts
	// as perfect in the breakdown.
	PerfectThreshold float64 `yaml:"perfect_threshold"`
	// IssueScoreCutoff is the per-stroke score below which a free-text
	// issue is attached to the stroke analysis.
	IssueScoreCutoff float64 `yaml:"issue_score_cutoff"`
	// MissingStrokePenalty scales the deduction for missing strokes:
	// (1 - actual/expected) * MissingStrokePenalty.
	MissingStrokePenalty float64 `yaml:"missing_stroke_penalty"`
	// ExtraStrokePenalty scales the deduction for extra strokes. Half as
	// harsh as missing ones: completeness is rewarded over exact count.
	ExtraStrokePenalty float64 `yaml:"extra_stroke_penalty"`

	// HandwritingWeight and PostureWeight combine the two component scores
	// into the total. They must sum to 1.
	HandwritingWeight float64 `yaml:"handwriting_weight"`
	PostureWeight     float64 `yaml:"posture_weight"`

	Order   OrderRules   `yaml:"order"`
	Posture PostureRules `yaml:"posture"`
	Grades  GradeBands   `yaml:"grades"`
}

// OrderRules holds the stroke-order validator tuning.
type OrderRules struct {
	// PenaltyFactor accumulates PenaltyFactor/N per stroke whose best
	// matrix match is not its own index.
	PenaltyFactor float64 `yaml:"penalty_factor"`
	// MismatchScore and MismatchPenalty are the fixed verdict values
	// reported on a stroke-count mismatch, before any alignment runs.
	MismatchScore   float64 `yaml:"mismatch_score"`
	MismatchPenalty float64 `yaml:"mismatch_penalty"`
	// LowSimilarityCutoff halves the diagonal mean (by LowSimilarityFactor)
	// when the strokes are ordered correctly but traced far from the
	// template, preventing lucky order matches from masking bad tracing.
	LowSimilarityCutoff float64 `yaml:"low_similarity_cutoff"`
	LowSimilarityFactor float64 `yaml:"low_similarity_factor"`
	// DirectionDominance is the displacement-ratio threshold for
	// classifying a stroke as horizontal or vertical.
	DirectionDominance float64 `yaml:"direction_dominance"`
	// DirectionBoost is the maximum score bonus for matching stroke
	// directions, applied when the match rate exceeds DirectionBoostCutoff.
	DirectionBoost       float64 `yaml:"direction_boost"`
	DirectionBoostCutoff float64 `yaml:"direction_boost_cutoff"`
	// ValidScore and ValidPenalty gate the final verdict:
	// valid = score >= ValidScore && penalty < ValidPenalty.
	ValidScore   float64 `yaml:"valid_score"`
	ValidPenalty float64 `yaml:"valid_penalty"`
}

// PostureRules holds the posture evaluator threshold bands. Each metric has
// a warning threshold, a stricter critical threshold, and an independent
// maximum penalty budget. Between warning and critical the penalty ramps
// linearly to half the maximum; at or beyond critical the full maximum
// applies.
type PostureRules struct {
	SpineWarning    float64 `yaml:"spine_warning"`  // degrees
	SpineCritical   float64 `yaml:"spine_critical"` // degrees
	SpineMaxPenalty float64 `yaml:"spine_max_penalty"`

	EyeWarning    float64 `yaml:"eye_warning"`  // cm; below this is too close
	EyeCritical   float64 `yaml:"eye_critical"` // cm
	EyeMaxPenalty float64 `yaml:"eye_max_penalty"`

	HeadWarning    float64 `yaml:"head_warning"`  // degrees
	HeadCritical   float64 `yaml:"head_critical"` // degrees
	HeadMaxPenalty float64 `yaml:"head_max_penalty"`
}

// GradeBands maps total scores to grade tiers.
type GradeBands struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Pass      float64 `yaml:"pass"`
}

// DefaultScoring returns the documented default tuning.
func DefaultScoring() Scoring {
	return Scoring{
		ResamplePoints:       25,
		MaxDistance:          1.0,
		PerfectThreshold:     0.95,
		IssueScoreCutoff:     60,
		MissingStrokePenalty: 50,
		ExtraStrokePenalty:   25,
		HandwritingWeight:    0.7,
		PostureWeight:        0.3,
		Order: OrderRules{
			PenaltyFactor:        0.3,
			MismatchScore:        0.3,
			MismatchPenalty:      0.5,
			LowSimilarityCutoff:  0.6,
			LowSimilarityFactor:  0.5,
			DirectionDominance:   0.7,
			DirectionBoost:       0.1,
			DirectionBoostCutoff: 0.5,
			ValidScore:           0.7,
			ValidPenalty:         0.3,
		},
		Posture: PostureRules{
			SpineWarning:    10,
			SpineCritical:   20,
			SpineMaxPenalty: 30,
			EyeWarning:      35,
			EyeCritical:     25,
			EyeMaxPenalty:   40,
			HeadWarning:     15,
			HeadCritical:    30,
			HeadMaxPenalty:  30,
		},
		Grades: GradeBands{
			Excellent: 90,
			Good:      80,
			Pass:      60,
		},
	}
}

// Default returns the full default configuration, with TemplateDir and
// DatabaseURL taken from the environment when set.
func Default() Config {
	return Config{
		TemplateDir: os.Getenv("SMARTPEN_TEMPLATE_DIR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Scoring:     DefaultScoring(),
	}
}

// Load reads a YAML configuration file and merges it over the defaults.
// A missing path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// Validate checks that the scoring configuration is internally consistent.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.ResamplePoints < 2 {
		return fmt.Errorf("config error: resample_points must be at least 2")
	}
	if s.MaxDistance <= 0 {
		return fmt.Errorf("config error: max_distance must be positive")
	}
	if s.HandwritingWeight < 0 || s.PostureWeight < 0 {
		return fmt.Errorf("config error: score weights must be non-negative")
	}
	if sum := s.HandwritingWeight + s.PostureWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("config error: score weights must sum to 1, got %.3f", sum)
	}
	if s.Posture.EyeCritical >= s.Posture.EyeWarning {
		return fmt.Errorf("config error: eye_critical must be below eye_warning")
	}
	if s.Posture.SpineWarning >= s.Posture.SpineCritical {
		return fmt.Errorf("config error: spine_warning must be below spine_critical")
	}
	if s.Posture.HeadWarning >= s.Posture.HeadCritical {
		return fmt.Errorf("config error: head_warning must be below head_critical")
	}
	return nil
}
