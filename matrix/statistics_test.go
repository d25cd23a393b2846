// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/glyphlearn/matrix"
)

const epsTight = 1e-12

func TestCenterColumns_SmallAndFallback(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 10, 20, 30})

	Yf, meansF, err := matrix.CenterColumns(X)
	require.NoError(t, err)
	Ys, meansS, err := matrix.CenterColumns(hide{X})
	require.NoError(t, err)

	want := []float64{5.5, 11, 16.5}
	sliceClose(t, meansF, want, 0)
	sliceClose(t, meansS, want, 0)
	CompareClose(t, Yf, Ys, 0)

	// Column averages of Y ≈ 0.
	for j := 0; j < 3; j++ {
		sum := MustAt(t, Yf, 0, j) + MustAt(t, Yf, 1, j)
		require.InDelta(t, 0, sum/2, epsTight, "col %d", j)
	}
	// Input untouched.
	require.Equal(t, 1.0, MustAt(t, X, 0, 0))
}

func TestCovariance_KnownValues(t *testing.T) {
	t.Parallel()

	// Two perfectly correlated columns: y = 2x.
	X := NewFilledDense(t, 3, 2, []float64{1, 2, 2, 4, 3, 6})
	cov, means, err := matrix.Covariance(X)
	require.NoError(t, err)
	sliceClose(t, means, []float64{2, 4}, epsTight)
	CompareClose(t, cov, NewFilledDense(t, 2, 2, []float64{1, 2, 2, 4}), epsTight)
}

func TestCovariance_NeedsTwoRows(t *testing.T) {
	t.Parallel()

	X := NewFilledDense(t, 1, 2, []float64{1, 2})
	_, _, err := matrix.Covariance(X)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.Covariance(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
