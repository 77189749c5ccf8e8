package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/evaluate"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/history"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/observability"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score handwritten strokes against a reference character",
	Long: `Scores a user's stroke trajectories against the reference template for a
single character, optionally combined with a posture sample, and prints the
graded result. With --user and a configured database the attempt is recorded
to practice history.`,
	RunE: runScore,
}

var (
	scoreConfigPath string
	scoreCharacter  string
	scoreStrokes    string
	scorePosture    string
	scoreUser       string
	scoreJSON       bool
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to smartpen.yaml (optional)")
	scoreCmd.Flags().StringVarP(&scoreCharacter, "character", "c", "", "Target glyph (required)")
	scoreCmd.Flags().StringVarP(&scoreStrokes, "strokes", "s", "", "Path to user strokes JSON file (required)")
	scoreCmd.Flags().StringVar(&scorePosture, "posture", "", "Posture sample as spine,eye_distance,head_tilt (optional)")
	scoreCmd.Flags().StringVar(&scoreUser, "user", "", "User ID for recording the attempt (optional)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the raw result JSON")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print detailed scoring information")

	_ = scoreCmd.MarkFlagRequired("character")
	_ = scoreCmd.MarkFlagRequired("strokes")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(scoreConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	strokes, err := readStrokes(scoreStrokes)
	if err != nil {
		return err
	}
	sample, err := parsePosture(scorePosture)
	if err != nil {
		return err
	}

	store, err := connectStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect practice history store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	source, err := buildSource(cfg, store)
	if err != nil {
		return err
	}

	evaluator := evaluate.New(source, cfg.Scoring)

	started := time.Now()
	result, err := evaluator.Evaluate(ctx, &types.EvaluationRequest{
		Character:   scoreCharacter,
		UserStrokes: strokes,
		Posture:     sample,
		UserID:      scoreUser,
	})
	if err != nil {
		return err
	}

	if store != nil && scoreUser != "" {
		attempt := history.AttemptFromResult(scoreUser, scoreCharacter, result, time.Since(started))
		if err := store.SaveAttempt(ctx, attempt); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to record attempt: %v\n", err)
		}
	}

	if scoreJSON {
		return printJSON(result)
	}
	if scoreVerbose {
		observability.NewPrinter(os.Stdout).PrintResult(scoreCharacter, result)
		return nil
	}

	fmt.Printf("%s: %.1f (%s) %s\n", scoreCharacter, result.TotalScore, result.Grade, result.Feedback)
	return nil
}
