// SPDX-License-Identifier: MIT

package learner

import (
	"math"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Mode selects the feedback protocol.
type Mode int

const (
	// Groupwise compares every recorded attempt.
	Groupwise Mode = iota
	// Pairwise compares the latest proposal with the current best.
	Pairwise
)

// String returns "groupwise" or "pairwise".
func (m Mode) String() string {
	switch m {
	case Groupwise:
		return "groupwise"
	case Pairwise:
		return "pairwise"
	default:
		return "unknown"
	}
}

// Defaults applied by New.
const (
	// DefaultNumComponents is used when Settings.NumComponents is zero.
	DefaultNumComponents = 10

	// MaxProposalAttempts caps ProposeDifferent's redraws.
	MaxProposalAttempts = 10000

	// ConvergenceTolerance is added to MinParamDiff in the convergence test.
	ConvergenceTolerance = 1e-2
)

// DefaultStdDevMultiples is used for a varied index without an explicit
// multiple.
var DefaultStdDevMultiples = [2]float64{-6, 6}

// OptionalBounds is an absolute initial interval whose ends may be unset.
// Unset ends are resolved from Settings.StdDevMultiples.
type OptionalBounds struct {
	Min *float64 `yaml:"min" json:"min"`
	Max *float64 `yaml:"max" json:"max"`
}

// Settings describe one glyph's learner.
type Settings struct {
	// Glyph names the glyph type being learned.
	Glyph string
	// DatasetPaths are read by New and concatenated (equal points per shape).
	DatasetPaths []string
	// Vary lists the 0-based parameter indices to perturb; Vary[0] is searched.
	Vary []int
	// Mode selects groupwise or pairwise feedback.
	Mode Mode
	// InitialBounds holds one optional absolute interval per Vary entry.
	InitialBounds []OptionalBounds
	// StdDevMultiples holds one [lo, hi] pair per Vary entry; an unset bound
	// end becomes multiple × the fitted variance of that component. Entries
	// past the end of the slice reuse the last one; an empty slice means
	// DefaultStdDevMultiples.
	StdDevMultiples [][2]float64
	// InitialValue fixes the tracked coordinate at Start; nil draws it.
	InitialValue *float64
	// MinParamDiff is how far apart two proposals must be to be told apart.
	MinParamDiff float64
	// NumComponents is K; zero means DefaultNumComponents. It is clamped to
	// the space's maximum.
	NumComponents int
	// ExtendOnDemonstration appends demonstrations to the space and refits.
	ExtendOnDemonstration bool
	// PersistExtended rewrites the dataset file after every extension.
	// It requires exactly one dataset path.
	PersistExtended bool
}

// Validate reports structural problems that do not depend on a fitted space.
func (s Settings) Validate() error {
	if len(s.Vary) == 0 {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: no parameter to vary", s.Glyph)
	}
	seen := make(map[int]bool, len(s.Vary))
	for _, idx := range s.Vary {
		if idx < 0 {
			return learnerErrorf(opNew, ErrInvalidSettings, "%q: parameter index %d", s.Glyph, idx)
		}
		if seen[idx] {
			return learnerErrorf(opNew, ErrInvalidSettings, "%q: parameter index %d repeated", s.Glyph, idx)
		}
		seen[idx] = true
	}
	if s.Mode != Groupwise && s.Mode != Pairwise {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: mode %d", s.Glyph, int(s.Mode))
	}
	if s.MinParamDiff < 0 || math.IsNaN(s.MinParamDiff) || math.IsInf(s.MinParamDiff, 0) {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: min param diff %g", s.Glyph, s.MinParamDiff)
	}
	if len(s.InitialBounds) > len(s.Vary) {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: %d initial bounds for %d varied parameters",
			s.Glyph, len(s.InitialBounds), len(s.Vary))
	}
	if s.NumComponents < 0 {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: %d components", s.Glyph, s.NumComponents)
	}
	if s.InitialValue != nil && (math.IsNaN(*s.InitialValue) || math.IsInf(*s.InitialValue, 0)) {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: initial value %g", s.Glyph, *s.InitialValue)
	}
	if s.PersistExtended && len(s.DatasetPaths) != 1 {
		return learnerErrorf(opNew, ErrInvalidSettings, "%q: persisting needs one dataset path, have %d",
			s.Glyph, len(s.DatasetPaths))
	}

	return nil
}

// clone deep-copies the slices and pointers of s.
func (s Settings) clone() Settings {
	out := s
	out.DatasetPaths = append([]string(nil), s.DatasetPaths...)
	out.Vary = append([]int(nil), s.Vary...)
	out.StdDevMultiples = append([][2]float64(nil), s.StdDevMultiples...)
	out.InitialBounds = make([]OptionalBounds, len(s.InitialBounds))
	for i, ob := range s.InitialBounds {
		out.InitialBounds[i] = OptionalBounds{Min: copyFloat(ob.Min), Max: copyFloat(ob.Max)}
	}
	out.InitialValue = copyFloat(s.InitialValue)

	return out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p

	return &v
}

// multiples returns the std-dev multiples for Vary entry i.
func (s Settings) multiples(i int) [2]float64 {
	switch {
	case len(s.StdDevMultiples) == 0:
		return DefaultStdDevMultiples
	case i < len(s.StdDevMultiples):
		return s.StdDevMultiples[i]
	default:
		return s.StdDevMultiples[len(s.StdDevMultiples)-1]
	}
}

// resolveBounds turns the optional initial bounds into one absolute interval
// per varied index, scaling std-dev multiples by the component variances.
func (s Settings) resolveBounds(space *shapespace.Space) ([]shapespace.Bounds, error) {
	variances := space.Variances()
	out := make([]shapespace.Bounds, len(s.Vary))
	for i, idx := range s.Vary {
		var ob OptionalBounds
		if i < len(s.InitialBounds) {
			ob = s.InitialBounds[i]
		}
		m := s.multiples(i)
		b := shapespace.Bounds{Min: m[0] * variances[idx], Max: m[1] * variances[idx]}
		if ob.Min != nil {
			b.Min = *ob.Min
		}
		if ob.Max != nil {
			b.Max = *ob.Max
		}
		if !b.Valid() {
			return nil, learnerErrorf(opNew, ErrInvalidSettings, "%q: bounds [%g, %g] for parameter %d",
				s.Glyph, b.Min, b.Max, idx)
		}
		out[i] = b
	}

	return out, nil
}
