// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over observation rows (one sample per row):
//     CenterColumns(X) -> (Xc, means), Covariance(X) -> (Cov, means).
//   - Deterministic compositions over the canonical kernels (Transpose, Mul, Scale).

package matrix

const (
	opCenterColumns = "CenterColumns"
	opCovariance    = "Covariance"
)

// CenterColumns subtracts the per-column mean from every element.
// Implementation:
//   - Stage 1: validate X non-nil.
//   - Stage 2: accumulate column sums in i→j order, divide by r.
//   - Stage 3: write the centered copy.
//
// Returns:
//   - Matrix: centered copy (r×c), a fresh *Dense.
//   - []float64: column means (len=c).
//
// Complexity: Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	r, c := X.Rows(), X.Cols()
	means := make([]float64, c)
	out, err := NewDense(r, c)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	var i, j int
	var v float64
	d, fast := X.(*Dense)
	if fast {
		copy(out.data, d.data)
	} else {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, atErrorf(opCenterColumns, "At", i, j, err)
				}
				out.data[i*c+j] = v
			}
		}
	}

	// Sums first, then scale once.
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			means[j] += out.data[i*c+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out.data[i*c+j] -= means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ Xc)/(r-1).
// Rows are observations, columns are variables.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when r < 2.
// Complexity: Time O(r*c²), Space O(c²).
//
// Notes:
//   - The result is symmetrized explicitly (upper triangle mirrored) so that
//     ValidateSymmetric in Eigen never trips on floating-point noise.
func Covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	r := X.Rows()
	if r < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}

	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	Xct, err := Transpose(Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	G, err := Mul(Xct, Xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	cov, err := Scale(G, 1.0/float64(r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	d := cov.(*Dense)
	n := d.c
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d.data[j*n+i] = d.data[i*n+j]
		}
	}

	return d, means, nil
}
