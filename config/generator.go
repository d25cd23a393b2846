// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/glyphlearn/learner"
)

// ErrUnknownGlyph reports a glyph without a dataset.
var ErrUnknownGlyph = errors.New("config: unknown glyph")

// Generator builds learner.Settings per glyph from a Config and its seeds.
type Generator struct {
	cfg   *Config
	seeds map[string][]float64
}

// NewGenerator reads cfg.SeedFile, when set, and returns a Generator.
func NewGenerator(cfg *Config) (*Generator, error) {
	g := &Generator{cfg: cfg, seeds: map[string][]float64{}}
	if cfg.SeedFile != "" {
		seeds, err := LoadSeeds(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		g.seeds = seeds
	}

	return g, nil
}

// Seeds returns the parameter vector seeded for glyph, if any.
func (g *Generator) Seeds(glyph string) ([]float64, bool) {
	s, ok := g.seeds[glyph]
	return s, ok
}

// Settings returns the learner settings of glyph. Without dataset_paths the
// dataset is <dataset_dir>/<glyph><dataset_ext> and must exist. Without an
// initial_value, a seeded glyph starts at its seed's tracked component.
//
// Errors: ErrUnknownGlyph for a glyph without a readable dataset name or file;
// learner.ErrInvalidSettings for settings the learner cannot use.
func (g *Generator) Settings(glyph string) (learner.Settings, error) {
	if glyph == "" || glyph != filepath.Base(glyph) || glyph == "." || glyph == ".." {
		return learner.Settings{}, fmt.Errorf("glyph %q: %w", glyph, ErrUnknownGlyph)
	}
	lc := g.cfg.For(glyph)

	paths := lc.DatasetPaths
	if len(paths) == 0 {
		path := filepath.Join(g.cfg.DatasetDir, glyph+g.cfg.DatasetExt)
		if _, err := os.Stat(path); err != nil {
			return learner.Settings{}, fmt.Errorf("dataset %s: %w (%v)", path, ErrUnknownGlyph, err)
		}
		paths = []string{path}
	}

	s := learner.Settings{
		Glyph:           glyph,
		DatasetPaths:    append([]string(nil), paths...),
		Vary:            append([]int(nil), lc.Vary...),
		Mode:            learner.Groupwise,
		StdDevMultiples: append([][2]float64(nil), lc.StdDevMultiples...),
	}
	if lc.Groupwise != nil && !*lc.Groupwise {
		s.Mode = learner.Pairwise
	}
	if lc.Components != nil {
		s.NumComponents = *lc.Components
	}
	if lc.MinParamDiff != nil {
		s.MinParamDiff = *lc.MinParamDiff
	}
	if lc.ExtendOnDemonstration != nil {
		s.ExtendOnDemonstration = *lc.ExtendOnDemonstration
	}
	if lc.PersistExtended != nil {
		s.PersistExtended = *lc.PersistExtended
	}
	for _, pair := range lc.InitialBounds {
		s.InitialBounds = append(s.InitialBounds, learner.OptionalBounds{Min: pair[0], Max: pair[1]})
	}

	switch seed, ok := g.seeds[glyph]; {
	case lc.InitialValue != nil:
		v := *lc.InitialValue
		s.InitialValue = &v
	case ok && len(s.Vary) > 0 && s.Vary[0] < len(seed):
		v := seed[s.Vary[0]]
		s.InitialValue = &v
	}

	if err := s.Validate(); err != nil {
		return learner.Settings{}, err
	}

	return s, nil
}
