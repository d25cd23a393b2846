// SPDX-License-Identifier: MIT

package shapespace_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

func seeded(t *testing.T, k int) *shapespace.Space {
	t.Helper()

	return mustFit(t, k, shapespace.WithSource(rand.NewSource(7)))
}

func TestSampleUniform_WithinBounds(t *testing.T) {
	t.Parallel()
	s := seeded(t, 3)
	base := []float64{0.5, -1, 2}
	bounds := []shapespace.Bounds{{Min: -2, Max: 3}}

	for i := 0; i < 200; i++ {
		shape, params, err := s.SampleUniform(base, []int{1}, bounds)
		require.NoError(t, err)
		require.Len(t, shape, 6)
		require.True(t, bounds[0].Contains(params[1]), "draw %g", params[1])
		require.Equal(t, 0.5, params[0])
		require.Equal(t, 2.0, params[2])

		want, err := s.Synthesize(params)
		require.NoError(t, err)
		require.Equal(t, want, shape)
	}
	require.Equal(t, []float64{0.5, -1, 2}, base, "base must not be modified")
}

func TestSampleUniform_Reproducible(t *testing.T) {
	t.Parallel()
	a, b := seeded(t, 2), seeded(t, 2)
	bounds := []shapespace.Bounds{{Min: -6, Max: 6}, {Min: 0, Max: 1}}
	for i := 0; i < 10; i++ {
		_, pa, err := a.SampleUniform(a.Zero(), []int{0, 1}, bounds)
		require.NoError(t, err)
		_, pb, err := b.SampleUniform(b.Zero(), []int{0, 1}, bounds)
		require.NoError(t, err)
		require.Equal(t, pa, pb)
	}
}

func TestSampleUniform_DegenerateInterval(t *testing.T) {
	t.Parallel()
	s := seeded(t, 2)
	_, params, err := s.SampleUniform(s.Zero(), []int{0}, []shapespace.Bounds{{Min: 1.5, Max: 1.5}})
	require.NoError(t, err)
	require.Equal(t, 1.5, params[0])
}

func TestSampleTriangular_WithinBoundsAndPeaked(t *testing.T) {
	t.Parallel()
	s := seeded(t, 2)
	bounds := []shapespace.Bounds{{Min: -6, Max: 6}}
	sum := 0.0
	const n = 2000
	for i := 0; i < n; i++ {
		_, params, err := s.SampleTriangular(s.Zero(), []int{1}, bounds, []float64{4})
		require.NoError(t, err)
		require.True(t, bounds[0].Contains(params[1]))
		sum += params[1]
	}
	// Triangle(-6, 6, 4) has mean 4/3.
	require.InDelta(t, 4.0/3, sum/n, 0.3)

	// Modes outside the interval are clamped, NaN becomes the midpoint.
	_, params, err := s.SampleTriangular(s.Zero(), []int{0}, []shapespace.Bounds{{Min: 0, Max: 1}}, []float64{10})
	require.NoError(t, err)
	require.True(t, params[0] >= 0 && params[0] <= 1)
	_, params, err = s.SampleTriangular(s.Zero(), []int{0}, []shapespace.Bounds{{Min: 0, Max: 1}}, []float64{math.NaN()})
	require.NoError(t, err)
	require.False(t, math.IsNaN(params[0]))
}

func TestSampling_Errors(t *testing.T) {
	t.Parallel()
	s := seeded(t, 2)
	ok := []shapespace.Bounds{{Min: -1, Max: 1}}

	_, _, err := s.SampleUniform([]float64{0}, []int{0}, ok)
	require.ErrorIs(t, err, shapespace.ErrDimension)
	_, _, err = s.SampleUniform(s.Zero(), []int{2}, ok)
	require.ErrorIs(t, err, shapespace.ErrDimension)
	_, _, err = s.SampleUniform(s.Zero(), []int{-1}, ok)
	require.ErrorIs(t, err, shapespace.ErrDimension)
	_, _, err = s.SampleUniform(s.Zero(), []int{0, 1}, ok)
	require.ErrorIs(t, err, shapespace.ErrDimension)
	_, _, err = s.SampleUniform(s.Zero(), []int{0}, []shapespace.Bounds{{Min: 2, Max: 1}})
	require.ErrorIs(t, err, shapespace.ErrInvalidBounds)
	_, _, err = s.SampleTriangular(s.Zero(), []int{0}, ok, nil)
	require.ErrorIs(t, err, shapespace.ErrDimension)
}

func TestBounds(t *testing.T) {
	t.Parallel()
	b := shapespace.Bounds{Min: -1, Max: 3}
	require.True(t, b.Valid())
	require.Equal(t, 4.0, b.Width())
	require.Equal(t, 3.0, b.Clamp(5))
	require.Equal(t, -1.0, b.Clamp(-5))
	require.Equal(t, shapespace.Bounds{Min: -2, Max: 4}, b.Expand(1))
	require.False(t, b.Expand(-3).Valid())
	require.False(t, shapespace.Bounds{Min: math.NaN(), Max: 1}.Valid())
	require.False(t, shapespace.Bounds{Min: 0, Max: math.Inf(1)}.Valid())
}
