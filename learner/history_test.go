// SPDX-License-Identifier: MIT

package learner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

func TestHistory_InsertAfterEqual(t *testing.T) {
	t.Parallel()
	h := newHistory(shapespace.Bounds{Min: -6, Max: 6})
	for _, v := range []float64{0, 2, -3, 2, 6} {
		h.add(v, []float64{v})
	}
	require.Equal(t, []float64{-6, -3, 0, 2, 2, 6, 6}, h.sorted)
	require.Equal(t, 5, h.len())
	a, ok := h.attempt(1)
	require.True(t, ok)
	require.Equal(t, []float64{2}, a)
	_, ok = h.attempt(5)
	require.False(t, ok)
	_, ok = h.attempt(-1)
	require.False(t, ok)
}

func TestHistory_Narrow(t *testing.T) {
	t.Parallel()
	h := newHistory(shapespace.Bounds{Min: -6, Max: 6})
	for _, v := range []float64{0, 2, -3} {
		h.add(v, []float64{v})
	}
	// sorted: -6 -3 0 2 6
	tests := []struct {
		name string
		best float64
		want shapespace.Bounds
	}{
		{"inner neighbours", 0, shapespace.Bounds{Min: -2.6, Max: 1.6}},
		{"upper sentinel", 2, shapespace.Bounds{Min: 0.4, Max: 6}},
		{"lower sentinel", -3, shapespace.Bounds{Min: -6, Max: -0.4}},
	}
	for _, tc := range tests {
		got := h.narrow(tc.best, 0.4)
		require.InDeltaf(t, tc.want.Min, got.Min, 1e-12, tc.name)
		require.InDeltaf(t, tc.want.Max, got.Max, 1e-12, tc.name)
	}

	// Duplicates: the last occurrence is the pivot.
	h.add(2, []float64{2})
	got := h.narrow(2, 0.4)
	require.InDelta(t, 2.4, got.Min, 1e-12)
	require.InDelta(t, 6.0, got.Max, 1e-12)
}

func TestHistory_NarrowOutsideSentinels(t *testing.T) {
	t.Parallel()
	h := newHistory(shapespace.Bounds{Min: -1, Max: 1})
	h.add(-2, []float64{-2})
	got := h.narrow(-2, 0.1)
	require.Equal(t, -2.0, got.Min)
	require.InDelta(t, -1.1, got.Max, 1e-12)

	h = newHistory(shapespace.Bounds{Min: -1, Max: 1})
	h.add(3, []float64{3})
	got = h.narrow(3, 0.1)
	require.InDelta(t, 1.1, got.Min, 1e-12)
	require.Equal(t, 3.0, got.Max)
}
