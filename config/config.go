// SPDX-License-Identifier: MIT

// Package config handles glyphlearn configuration loading: the YAML session
// file, the parameter-seed file, and the per-glyph learner settings built
// from them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	DatasetDir string                   `yaml:"dataset_dir"`
	DatasetExt string                   `yaml:"dataset_ext"`
	SeedFile   string                   `yaml:"seed_file"`
	AuditLog   string                   `yaml:"audit_log"`
	Session    SessionConfig            `yaml:"session"`
	Defaults   LearnerConfig            `yaml:"defaults"`
	Glyphs     map[string]LearnerConfig `yaml:"glyphs"`
}

// SessionConfig holds session settings.
type SessionConfig struct {
	BoundExpansion float64 `yaml:"bound_expansion"`
	ReusePrevious  bool    `yaml:"reuse_previous"`
}

// LearnerConfig holds learner settings. In Glyphs every set field overrides
// the corresponding field of Defaults; pointers distinguish "not set" from
// "explicitly zero".
type LearnerConfig struct {
	Components      *int         `yaml:"components,omitempty"`
	Vary            []int        `yaml:"vary,omitempty"`
	Groupwise       *bool        `yaml:"groupwise,omitempty"`
	MinParamDiff    *float64     `yaml:"min_param_diff,omitempty"`
	StdDevMultiples [][2]float64 `yaml:"std_dev_multiples,omitempty"`
	// InitialBounds holds [min, max] pairs; null leaves that end to
	// StdDevMultiples.
	InitialBounds         [][2]*float64 `yaml:"initial_bounds,omitempty"`
	InitialValue          *float64      `yaml:"initial_value,omitempty"`
	ExtendOnDemonstration *bool         `yaml:"extend_on_demonstration,omitempty"`
	PersistExtended       *bool         `yaml:"persist_extended,omitempty"`
	// DatasetPaths replaces <dataset_dir>/<glyph><dataset_ext>.
	DatasetPaths []string `yaml:"dataset_paths,omitempty"`
}

// Default returns the default configuration: one varied component (index 2),
// groupwise comparison, bounds of ±6 variances and a 0.4 minimum difference.
func Default() *Config {
	components := 10
	groupwise := true
	minDiff := 0.4
	extend, persist := false, false

	return &Config{
		DatasetDir: "datasets",
		DatasetExt: ".dat",
		AuditLog:   "shapes.log",
		Session: SessionConfig{
			BoundExpansion: 0,
			ReusePrevious:  true,
		},
		Defaults: LearnerConfig{
			Components:            &components,
			Vary:                  []int{2},
			Groupwise:             &groupwise,
			MinParamDiff:          &minDiff,
			StdDevMultiples:       [][2]float64{{-6, 6}},
			ExtendOnDemonstration: &extend,
			PersistExtended:       &persist,
		},
		Glyphs: map[string]LearnerConfig{},
	}
}

// Load loads configuration from a file on top of Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Glyphs == nil {
		cfg.Glyphs = map[string]LearnerConfig{}
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns default if not found.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// For returns the learner configuration of glyph: Defaults with the glyph's
// overrides applied.
func (c *Config) For(glyph string) LearnerConfig {
	return c.Defaults.merge(c.Glyphs[glyph])
}

// merge returns base with every field set in o replacing base's.
func (base LearnerConfig) merge(o LearnerConfig) LearnerConfig {
	out := base
	if o.Components != nil {
		out.Components = o.Components
	}
	if o.Vary != nil {
		out.Vary = o.Vary
	}
	if o.Groupwise != nil {
		out.Groupwise = o.Groupwise
	}
	if o.MinParamDiff != nil {
		out.MinParamDiff = o.MinParamDiff
	}
	if o.StdDevMultiples != nil {
		out.StdDevMultiples = o.StdDevMultiples
	}
	if o.InitialBounds != nil {
		out.InitialBounds = o.InitialBounds
	}
	if o.InitialValue != nil {
		out.InitialValue = o.InitialValue
	}
	if o.ExtendOnDemonstration != nil {
		out.ExtendOnDemonstration = o.ExtendOnDemonstration
	}
	if o.PersistExtended != nil {
		out.PersistExtended = o.PersistExtended
	}
	if o.DatasetPaths != nil {
		out.DatasetPaths = o.DatasetPaths
	}

	return out
}
