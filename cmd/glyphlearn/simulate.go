// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/glyphlearn/config"
	"github.com/katalvlaran/glyphlearn/learner"
	"github.com/katalvlaran/glyphlearn/session"
	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Simulate command flags
var (
	simulateGoal     float64
	simulateSteps    int
	simulateStable   int
	simulateSeed     uint64
	simulateSeedsOut string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <word>...",
	Short: "Run a learning session against a simulated teacher",
	Long: `Learn every letter of each word in turn. For every glyph the simulated
teacher always prefers the shape whose tracked parameter is closest to --goal.
A glyph is done once it stayed converged for --stable steps or after --steps
feedback rounds. Letters seen in an earlier word restart from what they learned.`,
	Example: `  # Learn "cat" then "act" with the tracked parameter aiming at 1.5
  glyphlearn simulate --goal 1.5 cat act

  # Reproducible run, saving the learned vectors
  glyphlearn simulate --seed 42 --seeds-out learned.txt hello`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		gen, err := config.NewGenerator(cfg)
		if err != nil {
			return err
		}

		opts := []session.Option{
			session.WithBoundExpansion(cfg.Session.BoundExpansion),
			session.WithReusePrevious(cfg.Session.ReusePrevious),
		}
		if simulateSeed != 0 {
			src := rand.NewSource(simulateSeed)
			opts = append(opts, session.WithLearnerOptions(
				learner.WithSpaceOptions(shapespace.WithSource(src))))
		}
		if cfg.AuditLog != "" {
			audit, closer, err := session.OpenAuditLog(cfg.AuditLog)
			if err != nil {
				return err
			}
			defer closer.Close()
			opts = append(opts, session.WithAuditLogger(audit))
		}
		sess := session.New(gen, opts...)

		out := cmd.OutOrStdout()
		for _, word := range args {
			glyphs := strings.Split(word, "")
			seen, err := sess.NewCollection(glyphs)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (seen before: %t)\n", word, seen)
			for range glyphs {
				if err := simulateGlyph(out, sess); err != nil {
					return err
				}
			}
		}

		if simulateSeedsOut != "" {
			return writeLearned(sess, simulateSeedsOut)
		}
		return nil
	},
}

// simulateGlyph starts the next glyph of the collection and answers its
// proposals until it settles.
func simulateGlyph(out io.Writer, sess *session.Session) error {
	shape, err := sess.StartNext()
	if err != nil {
		return err
	}
	l, err := sess.LearnerAt(shape.Position)
	if err != nil {
		return err
	}
	if !l.Started() {
		// Restarted from an earlier collection before any search of its own.
		if _, err := l.Start(); err != nil {
			return err
		}
	}

	steps := 0
	for ; steps < simulateSteps; steps++ {
		choice, err := sess.SimulatedChoice(shape.Position, simulateGoal)
		if err != nil {
			return err
		}
		res, err := sess.Feedback(shape.Position, choice, false)
		if err != nil {
			return err
		}
		if res.ConvergedFor >= simulateStable {
			steps++
			break
		}
	}
	b := l.Bounds()
	fmt.Fprintf(out, "  %s[%d]: best %.4f in [%.4f, %.4f] after %d steps (converged: %t)\n",
		shape.Glyph, shape.Position, l.Best(), b.Min, b.Max, steps, l.Converged())
	return nil
}

func writeLearned(sess *session.Session, path string) error {
	seeds := make(map[string][]float64)
	for _, g := range sess.Learned() {
		l, _ := sess.Learner(g)
		seeds[g] = l.Params()
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create seed file: %w", err)
	}
	if err := config.WriteSeeds(f, seeds); err != nil {
		f.Close()
		return fmt.Errorf("failed to write seed file: %w", err)
	}
	return f.Close()
}
