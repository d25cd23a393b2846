// SPDX-License-Identifier: MIT

package learner_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/glyphlearn/learner"
	"github.com/katalvlaran/glyphlearn/shapespace"
)

// fixtureSamples returns m deterministic 4-point shapes: a square whose
// corners are pushed around by a few smooth modes.
func fixtureSamples(m int) [][]float64 {
	base := []float64{0, 1, 1, 0, 0, 0, 1, 1}
	out := make([][]float64, m)
	for i := range out {
		a := math.Sin(float64(i) * 1.3)
		b := math.Cos(float64(i) * 0.7)
		c := math.Sin(float64(i)*2.1 + 0.5)
		row := make([]float64, len(base))
		for j := range row {
			row[j] = base[j] + 0.8*a*float64(j%2) + 0.3*b*float64(j%3) + 0.1*c*float64(j%4)
		}
		out[i] = row
	}

	return out
}

func fitSpace(t *testing.T, seed uint64) *shapespace.Space {
	t.Helper()
	s, err := shapespace.Fit(fixtureSamples(12), 4, 3, shapespace.WithSource(rand.NewSource(seed)))
	require.NoError(t, err)

	return s
}

func ptr(v float64) *float64 { return &v }

// absolute returns InitialBounds for one varied index.
func absolute(lo, hi float64) []learner.OptionalBounds {
	return []learner.OptionalBounds{{Min: ptr(lo), Max: ptr(hi)}}
}

func newLearner(t *testing.T, mode learner.Mode, opts ...func(*learner.Settings)) *learner.Learner {
	t.Helper()
	st := learner.Settings{
		Glyph:         "a",
		Vary:          []int{0},
		Mode:          mode,
		InitialBounds: absolute(-6, 6),
		InitialValue:  ptr(0),
		MinParamDiff:  0.4,
	}
	for _, fn := range opts {
		fn(&st)
	}
	l, err := learner.NewWithSpace(st, fitSpace(t, 11))
	require.NoError(t, err)

	return l
}
