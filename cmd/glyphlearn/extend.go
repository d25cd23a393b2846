// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

var extendOutput string

var extendCmd = &cobra.Command{
	Use:   "extend <dataset> <shapes>",
	Short: "Append shapes to a dataset file",
	Long: `Append every shape of <shapes> (a file in dataset format) to <dataset>.
Shapes with a different point count are resampled along their arc length.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, numPoints, err := shapespace.LoadDataset(args[0])
		if err != nil {
			return err
		}
		extra, extraPoints, err := shapespace.LoadDataset(args[1])
		if err != nil {
			return err
		}
		space, err := shapespace.Fit(samples, numPoints, 1)
		if err != nil {
			return fmt.Errorf("failed to fit: %w", err)
		}
		for i, shape := range extra {
			if extraPoints != numPoints {
				path, err := shapespace.ToPath(shape)
				if err != nil {
					return fmt.Errorf("shape %d: %w", i+1, err)
				}
				resampled, err := shapespace.Resample(path, numPoints)
				if err != nil {
					return fmt.Errorf("shape %d: %w", i+1, err)
				}
				shape = shapespace.FromPath(resampled)
			}
			if err := space.Extend(shape); err != nil {
				return fmt.Errorf("shape %d: %w", i+1, err)
			}
		}

		out := extendOutput
		if out == "" {
			out = args[0]
		}
		if err := space.Persist(out); err != nil {
			return fmt.Errorf("failed to write dataset: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples (%d added)\n", out, space.NumSamples(), len(extra))
		return nil
	},
}
