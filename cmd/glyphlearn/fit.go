// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Fit command flags
var (
	fitComponents int
	fitRawOrder   bool
	fitFormat     string
)

type fitReport struct {
	Dataset    string    `json:"dataset"`
	Samples    int       `json:"samples"`
	Points     int       `json:"points"`
	Components int       `json:"components"`
	Variances  []float64 `json:"variances"`
	Mean       []float64 `json:"mean"`
}

var fitCmd = &cobra.Command{
	Use:   "fit <dataset>...",
	Short: "Fit a shape space and report its components",
	Long: `Fit a PCA shape space over one or more dataset files (concatenated; all
must have the same number of points per shape) and print the variance of each
kept component.`,
	Example: `  # Ten components of the "a" dataset
  glyphlearn fit datasets/a.dat

  # JSON report with three components
  glyphlearn fit -k 3 --format json datasets/a.dat`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, numPoints, err := shapespace.LoadDataset(args...)
		if err != nil {
			return err
		}
		k := fitComponents
		if maxK := shapespace.MaxComponents(numPoints); k > maxK {
			k = maxK
		}
		var opts []shapespace.Option
		if fitRawOrder {
			opts = append(opts, shapespace.WithDecompositionOrder())
		}
		space, err := shapespace.Fit(samples, numPoints, k, opts...)
		if err != nil {
			return fmt.Errorf("failed to fit: %w", err)
		}

		report := fitReport{
			Dataset:    args[0],
			Samples:    space.NumSamples(),
			Points:     space.NumPoints(),
			Components: space.NumComponents(),
			Variances:  space.Variances(),
			Mean:       space.Mean(),
		}
		out := cmd.OutOrStdout()
		if fitFormat == "json" {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "%d samples, %d points per shape, %d components\n",
			report.Samples, report.Points, report.Components)
		total := 0.0
		for _, v := range report.Variances {
			total += v
		}
		for i, v := range report.Variances {
			share := 0.0
			if total > 0 {
				share = 100 * v / total
			}
			fmt.Fprintf(out, "  component %2d: variance %-12.6g %5.1f%%\n", i, v, share)
		}
		return nil
	},
}
