// Package evaluate orchestrates comprehensive scoring: stroke-order gating,
// per-stroke alignment, posture evaluation and the weighted final grade.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/dtw"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/ink"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/posture"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/resample"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/scoring"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/strokeorder"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/template"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// Evaluator runs one comprehensive scoring pass per request. All
// collaborators are injected explicitly so tests can substitute
// deterministic fakes; the evaluator holds no mutable state and is safe for
// concurrent use.
type Evaluator struct {
	// Source resolves reference templates. Required.
	Source template.Source
	// Extractor converts photos to strokes. Optional; image requests fail
	// with ink.ErrUnavailable when nil.
	Extractor ink.Extractor
	// Cfg is the engine tuning. Zero value is not usable; start from
	// config.DefaultScoring.
	Cfg config.Scoring
}

// New creates an Evaluator with the given template source and tuning.
func New(source template.Source, cfg config.Scoring) *Evaluator {
	return &Evaluator{Source: source, Cfg: cfg}
}

// Evaluate scores one handwritten character, optionally combined with a
// posture sample. Input-validation and template-lookup failures return an
// error; a stroke-count mismatch returns a complete zero-score Result
// tagged types.CodeStrokeOrderError without computing any alignment.
func (e *Evaluator) Evaluate(ctx context.Context, req *types.EvaluationRequest) (*types.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, &Error{Message: "invalid evaluation request", Cause: err}
	}

	character, err := e.Source.Load(ctx, req.Character)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("cannot score %q without a reference template", req.Character), Cause: err}
	}

	verdict, err := strokeorder.Validate(character.Medians, req.UserStrokes, e.Cfg)
	if err != nil {
		return nil, &Error{Message: "stroke order validation failed", Cause: err}
	}
	if !verdict.StrokeCountMatch {
		// Gating failure: a wrong stroke count rules out meaningful
		// quality scoring, so skip all alignment work and report one
		// unambiguous failure reason.
		return &types.Result{
			Grade:        types.GradeNeedsPractice,
			OrderVerdict: verdict,
			Feedback:     "stroke order error",
			Code:         types.CodeStrokeOrderError,
		}, nil
	}

	analyses, similarities, err := e.scoreStrokes(ctx, character.Medians, req.UserStrokes)
	if err != nil {
		return nil, err
	}

	expected := character.StrokeCount()
	breakdown := scoring.CharacterScore(similarities, &expected, e.Cfg)
	handwritingScore := breakdown.TotalScore

	postureScore := 100.0
	var postureAnalysis *types.PostureAnalysis
	if req.Posture != nil {
		analysis := posture.Evaluate(*req.Posture, e.Cfg.Posture)
		postureAnalysis = &analysis
		postureScore = analysis.Score
	}

	total := handwritingScore*e.Cfg.HandwritingWeight + postureScore*e.Cfg.PostureWeight

	return &types.Result{
		TotalScore:       round1(total),
		HandwritingScore: round1(handwritingScore),
		PostureScore:     round1(postureScore),
		Grade:            e.grade(total),
		StrokeAnalysis:   analyses,
		Breakdown:        &breakdown,
		OrderVerdict:     verdict,
		PostureAnalysis:  postureAnalysis,
		Feedback:         e.feedback(handwritingScore, postureScore, postureAnalysis),
	}, nil
}

// EvaluateImage extracts strokes from a handwriting photo and scores them.
// Extraction output that fails the minimum-signal validation returns a
// zero-score Result tagged types.CodeNoInk rather than an error, since a
// blank or badly framed photo is an expected user outcome.
func (e *Evaluator) EvaluateImage(ctx context.Context, characterGlyph string, image []byte, sample *types.PostureSample) (*types.Result, error) {
	if e.Extractor == nil {
		return nil, &Error{Message: "no ink extractor configured", Cause: ink.ErrUnavailable}
	}

	strokes, err := e.Extractor.Extract(ctx, image)
	if err != nil {
		return nil, &Error{Message: "ink extraction failed", Cause: err}
	}

	strokes, err = ink.ValidateStrokes(strokes)
	if err != nil {
		if errors.Is(err, ink.ErrNoInk) {
			return &types.Result{
				Grade:    types.GradeNeedsPractice,
				Feedback: "no scoreable writing detected; check the photo framing",
				Code:     types.CodeNoInk,
			}, nil
		}
		return nil, &Error{Message: "extracted strokes are not scoreable", Cause: err}
	}

	return e.Evaluate(ctx, &types.EvaluationRequest{
		Character:   characterGlyph,
		UserStrokes: strokes,
		Posture:     sample,
	})
}

// scoreStrokes resamples each template/user stroke pair and aligns them.
// Per-stroke alignments are independent, so they fan out across goroutines.
func (e *Evaluator) scoreStrokes(ctx context.Context, medians, userStrokes []types.Stroke) ([]types.StrokeAnalysis, []float64, error) {
	refStrokes := resample.Strokes(medians, e.Cfg.ResamplePoints)
	usrStrokes := resample.Strokes(userStrokes, e.Cfg.ResamplePoints)

	analyses := make([]types.StrokeAnalysis, len(usrStrokes))
	similarities := make([]float64, len(usrStrokes))

	g, _ := errgroup.WithContext(ctx)
	for i := range usrStrokes {
		i := i
		g.Go(func() error {
			similarity, _, err := dtw.CompareStrokes(refStrokes[i], usrStrokes[i], e.Cfg.MaxDistance)
			if err != nil {
				return fmt.Errorf("stroke %d: %w", i, err)
			}

			score := similarity * 100.0
			var issues []string
			if score < e.Cfg.IssueScoreCutoff {
				issues = append(issues, fmt.Sprintf("stroke %d deviates strongly from the reference", i+1))
			}

			analyses[i] = types.StrokeAnalysis{
				StrokeIndex: i,
				Similarity:  round3(similarity),
				Score:       round1(score),
				Issues:      issues,
			}
			similarities[i] = similarity
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, &Error{Message: "stroke alignment failed", Cause: err}
	}

	return analyses, similarities, nil
}

// grade maps a total score to its tier.
func (e *Evaluator) grade(total float64) string {
	bands := e.Cfg.Grades
	switch {
	case total >= bands.Excellent:
		return types.GradeExcellent
	case total >= bands.Good:
		return types.GradeGood
	case total >= bands.Pass:
		return types.GradePass
	default:
		return types.GradeNeedsPractice
	}
}

// feedback assembles the human-readable summary from the handwriting score
// band and the posture outcome.
func (e *Evaluator) feedback(handwritingScore, postureScore float64, postureAnalysis *types.PostureAnalysis) string {
	var parts []string

	switch {
	case handwritingScore >= 90:
		parts = append(parts, "beautifully written")
	case handwritingScore >= 70:
		parts = append(parts, "nicely written")
	case handwritingScore >= 60:
		parts = append(parts, "a fair attempt")
	default:
		parts = append(parts, "this character needs more practice")
	}

	if postureAnalysis != nil {
		if postureAnalysis.IsCorrect {
			if postureScore >= 90 {
				parts = append(parts, "posture is excellent too")
			} else {
				parts = append(parts, "posture is good")
			}
		} else {
			parts = append(parts, "though "+strings.TrimSuffix(postureAnalysis.Feedback, "."))
		}
	}

	return strings.Join(parts, ", ") + "!"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
