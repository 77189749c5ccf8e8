package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/config"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/history"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/observability"
	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect and manage reference character templates",
}

var templateShowCmd = &cobra.Command{
	Use:   "show <glyph>",
	Short: "Show the reference template for a glyph",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateAddCmd = &cobra.Command{
	Use:   "add <glyph>",
	Short: "Save a custom template for a glyph from a strokes file",
	Long:  "Stores the given stroke trajectories as a custom reference template in the database. Custom templates take precedence over hanzi-writer data on lookup.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateAdd,
}

var (
	templateConfigPath string
	templateStrokes    string
	templateJSON       bool
)

func init() {
	templateCmd.PersistentFlags().StringVar(&templateConfigPath, "config", "", "Path to smartpen.yaml (optional)")
	templateShowCmd.Flags().BoolVar(&templateJSON, "json", false, "Print the raw template JSON")
	templateAddCmd.Flags().StringVarP(&templateStrokes, "strokes", "s", "", "Path to strokes JSON file (required)")
	_ = templateAddCmd.MarkFlagRequired("strokes")

	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateAddCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateShow(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(templateConfigPath)
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

	character, err := source.Load(ctx, args[0])
	if err != nil {
		return err
	}

	if templateJSON {
		return printJSON(character)
	}
	observability.NewPrinter(os.Stdout).PrintTemplate(character)
	return nil
}

func runTemplateAdd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(templateConfigPath)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("custom templates require a database: set database_url or DATABASE_URL")
	}

	strokes, err := readStrokes(templateStrokes)
	if err != nil {
		return err
	}

	store, err := history.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect practice history store: %w", err)
	}
	defer store.Close()

	id, err := store.SaveTemplate(ctx, &types.Character{
		Glyph:   args[0],
		Source:  history.SourceCustom,
		Medians: strokes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved custom template %s for %q (%d strokes)\n", id, args[0], len(strokes))
	return nil
}
