// SPDX-License-Identifier: MIT

// Package main provides the glyphlearn command line: fitting shape spaces,
// extending datasets and running simulated learning sessions.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/glyphlearn"
)

var version = "0.1.0"

// Global flags
var (
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glyphlearn",
	Short: "Learn glyph shapes from teacher feedback",
	Long: `glyphlearn fits PCA shape spaces over glyph datasets and searches one
shape parameter per glyph from pairwise or groupwise feedback.

It provides:
  - fit: fit a shape space and report its components
  - extend: append shapes to a dataset file
  - simulate: run a learning session against a simulated teacher
  - init-config: write the default configuration file`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(cmd.ErrOrStderr())
	},
}

func setupLogging(w io.Writer) {
	if !verbose {
		glyphlearn.SetLogger(nil)
		return
	}
	glyphlearn.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "glyphlearn.yaml", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log search diagnostics to stderr")

	fitCmd.Flags().IntVarP(&fitComponents, "components", "k", 10, "Number of principal components (clamped to 2N-1)")
	fitCmd.Flags().BoolVar(&fitRawOrder, "raw-order", false, "Keep the eigen solver's component order")
	fitCmd.Flags().StringVarP(&fitFormat, "format", "f", "text", "Output format (text, json)")
	rootCmd.AddCommand(fitCmd)

	extendCmd.Flags().StringVarP(&extendOutput, "output", "o", "", "Write the extended dataset here instead of in place")
	rootCmd.AddCommand(extendCmd)

	simulateCmd.Flags().Float64VarP(&simulateGoal, "goal", "g", 0, "Tracked parameter value the simulated teacher wants")
	simulateCmd.Flags().IntVarP(&simulateSteps, "steps", "n", 200, "Maximum feedback steps per glyph")
	simulateCmd.Flags().IntVar(&simulateStable, "stable", 3, "Consecutive converged steps that end a glyph")
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "Random seed (0 draws from the shared source)")
	simulateCmd.Flags().StringVar(&simulateSeedsOut, "seeds-out", "", "Write learned parameter vectors as a seed file")
	rootCmd.AddCommand(simulateCmd)

	rootCmd.AddCommand(initConfigCmd)
}
