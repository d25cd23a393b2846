// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
	"sort"
)

// Eigen computes eigenvalues and eigenvectors of a real symmetric matrix with
// cyclic Jacobi sweeps.
//
// Implementation:
//   - Stage 1: ValidateSymmetric(m, symmetryTol); copy m into a working *Dense A; Q = I.
//   - Stage 2: per sweep, visit every (p,q), p<q, in row-major order and zero
//     A[p,q] with a plane rotation; accumulate the rotation into Q's columns.
//   - Stage 3: stop once off(A) ≤ eps·‖m‖_F; otherwise fail after maxSweeps.
//
// Returns:
//   - []float64: eigenvalues, i.e. diag(A) in the order the sweeps leave them.
//     The order is NOT sorted; use SortEigen for descending order.
//   - *Dense: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry (validation),
//   - ErrEigenFailed (not converged within maxSweeps).
//
// Determinism:
//   - Fixed (p,q) visiting order and fixed update order give stable results.
//
// Complexity:
//   - Time O(sweeps · n³), Space O(n²).
func Eigen(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)
	if err := ValidateSymmetric(m, o.symmetryTol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	// Stage 1: working copy and identity accumulator.
	n := m.Rows()
	a, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i, j int
	var v float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, nil, atErrorf(opEigen, "At", i, j, err)
			}
			a.data[i*n+j] = v
		}
	}
	q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	// The Frobenius norm is invariant under rotations, so one threshold serves all sweeps.
	var frob2 float64
	for _, v = range a.data {
		frob2 += v * v
	}
	threshold := o.eps * o.eps * frob2

	// Stage 2/3: sweeps until the off-diagonal mass is negligible.
	var (
		sweep              int
		p, r               int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
	)
	for sweep = 0; ; sweep++ {
		if offDiagonal2(a) <= threshold {
			break
		}
		if sweep == o.maxSweeps {
			return nil, nil, matrixErrorf(opEigen, ErrEigenFailed)
		}

		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = a.data[p*n+r]
				if apq == 0 {
					continue
				}
				app = a.data[p*n+p]
				aqq = a.data[r*n+r]

				// θ = (aqq−app)/(2·apq); t = sign(θ)/(|θ|+√(θ²+1)); c = 1/√(1+t²); s = t·c.
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = a.data[i*n+p]
					aiq = a.data[i*n+r]
					a.data[i*n+p] = c*aip - s*aiq
					a.data[p*n+i] = a.data[i*n+p]
					a.data[i*n+r] = s*aip + c*aiq
					a.data[r*n+i] = a.data[i*n+r]
				}
				a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a.data[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				a.data[p*n+r], a.data[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = q.data[i*n+p]
					qiq = q.data[i*n+r]
					q.data[i*n+p] = c*qip - s*qiq
					q.data[i*n+r] = s*qip + c*qiq
				}
			}
		}
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// offDiagonal2 returns Σ_{i≠j} A[i,j]².
func offDiagonal2(a *Dense) float64 {
	n := a.r
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				sum += a.data[i*n+j] * a.data[i*n+j]
			}
		}
	}

	return sum
}

// SortEigen reorders eigen-pairs by descending eigenvalue.
// Ties keep their original relative order (stable). Inputs are not mutated.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch when len(vals) != vecs.Cols().
// Complexity: O(n log n + n²).
func SortEigen(vals []float64, vecs *Dense) ([]float64, *Dense, error) {
	if vecs == nil {
		return nil, nil, matrixErrorf(opEigen, ErrNilMatrix)
	}
	if len(vals) != vecs.c {
		return nil, nil, matrixErrorf(opEigen, ErrDimensionMismatch)
	}

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return vals[order[x]] > vals[order[y]] })

	sortedVals := make([]float64, len(vals))
	sortedVecs, err := NewDense(vecs.r, vecs.c)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for dst, src := range order {
		sortedVals[dst] = vals[src]
		for i := 0; i < vecs.r; i++ {
			sortedVecs.data[i*vecs.c+dst] = vecs.data[i*vecs.c+src]
		}
	}

	return sortedVals, sortedVecs, nil
}
