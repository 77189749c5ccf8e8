package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/observability"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/strokeorder"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Validate stroke order against a reference character",
	Long:  "Checks the user's stroke count, order and direction against the reference template and prints the verdict, without running full scoring.",
	RunE:  runOrder,
}

var (
	orderConfigPath string
	orderCharacter  string
	orderStrokes    string
	orderJSON       bool
)

func init() {
	orderCmd.Flags().StringVar(&orderConfigPath, "config", "", "Path to smartpen.yaml (optional)")
	orderCmd.Flags().StringVarP(&orderCharacter, "character", "c", "", "Target glyph (required)")
	orderCmd.Flags().StringVarP(&orderStrokes, "strokes", "s", "", "Path to user strokes JSON file (required)")
	orderCmd.Flags().BoolVar(&orderJSON, "json", false, "Print the raw verdict JSON")

	_ = orderCmd.MarkFlagRequired("character")
	_ = orderCmd.MarkFlagRequired("strokes")

	rootCmd.AddCommand(orderCmd)
}

func runOrder(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(orderConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	strokes, err := readStrokes(orderStrokes)
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

	character, err := source.Load(ctx, orderCharacter)
	if err != nil {
		return err
	}

	verdict, err := strokeorder.Validate(character.Medians, strokes, cfg.Scoring)
	if err != nil {
		return err
	}

	if orderJSON {
		return printJSON(verdict)
	}
	observability.NewPrinter(os.Stdout).PrintVerdict(orderCharacter, verdict)
	return nil
}
