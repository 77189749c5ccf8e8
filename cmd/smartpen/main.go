// Package main provides the entry point for the SmartPen handwriting scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smartpen",
	Short: "SmartPen handwriting scoring engine",
	Long:  "SmartPen scores handwritten characters against reference templates: stroke trajectories are resampled, aligned with dynamic time warping, checked for stroke order and combined with posture metrics into one graded result.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
