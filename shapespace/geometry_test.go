// SPDX-License-Identifier: MIT

package shapespace_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

func TestToPathFromPath(t *testing.T) {
	t.Parallel()
	shape := []float64{0, 1, 2, 5, 6, 7}
	ls, err := shapespace.ToPath(shape)
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{0, 5}, {1, 6}, {2, 7}}, ls)
	require.Equal(t, shape, shapespace.FromPath(ls))

	_, err = shapespace.ToPath([]float64{1, 2, 3})
	require.ErrorIs(t, err, shapespace.ErrDimension)
	_, err = shapespace.ToPath(nil)
	require.ErrorIs(t, err, shapespace.ErrDimension)
}

func TestResample(t *testing.T) {
	t.Parallel()
	// An L of total length 4 sampled at 5 points lands on every unit step.
	ls := orb.LineString{{0, 0}, {2, 0}, {2, 2}}
	got, err := shapespace.Resample(ls, 5)
	require.NoError(t, err)
	want := orb.LineString{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	require.Len(t, got, 5)
	for i := range want {
		require.InDelta(t, want[i][0], got[i][0], 1e-12)
		require.InDelta(t, want[i][1], got[i][1], 1e-12)
	}

	// Duplicate points do not break the walk.
	got, err = shapespace.Resample(orb.LineString{{0, 0}, {0, 0}, {4, 0}}, 3)
	require.NoError(t, err)
	require.InDelta(t, 2.0, got[1][0], 1e-12)

	single, err := shapespace.Resample(orb.LineString{{3, 4}}, 3)
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{3, 4}, {3, 4}, {3, 4}}, single)
	empty, err := shapespace.Resample(nil, 0)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = shapespace.Resample(ls, -1)
	require.ErrorIs(t, err, shapespace.ErrDimension)
}

func TestCentreAndNormalize(t *testing.T) {
	t.Parallel()
	// Points (0,0) (4,0) (4,2): box 4×2 centred at (2,1).
	shape := []float64{0, 4, 4, 0, 0, 2}
	c, err := shapespace.Centre(shape)
	require.NoError(t, err)
	require.Equal(t, orb.Point{2, 1}, c)

	n, err := shapespace.Normalize(shape)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-0.5, 0.5, 0.5, -0.25, -0.25, 0.25}, n, 1e-12)

	h, err := shapespace.NormalizeHeight(shape)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-1, 1, 1, -0.5, -0.5, 0.5}, h, 1e-12)

	_, err = shapespace.Normalize([]float64{1, 1, 2, 2})
	require.ErrorIs(t, err, shapespace.ErrDegenerateShape)
	_, err = shapespace.NormalizeHeight([]float64{0, 4, 1, 1})
	require.ErrorIs(t, err, shapespace.ErrDegenerateShape)
}
