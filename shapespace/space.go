// SPDX-License-Identifier: MIT

package shapespace

import (
	"github.com/katalvlaran/glyphlearn/matrix"
)

// Space is a fitted PCA shape model.
//
// Invariants:
//   - every sample has length 2·numPoints;
//   - 1 ≤ k ≤ 2·numPoints − 1;
//   - mean, components and variances always come from the same fit of the
//     current samples (Extend refits all of them or none).
type Space struct {
	numPoints  int
	k          int
	samples    [][]float64   // M rows, 2N columns
	mean       []float64     // 2N
	components *matrix.Dense // 2N×K, orthonormal columns
	variances  []float64     // K
	opts       options
}

// Fit builds a Space from M ≥ 2 samples of 2·numPoints coordinates, keeping k
// principal components.
// Implementation:
//   - Stage 1: validate numPoints, sample count and lengths, k ∈ [1, 2N−1].
//   - Stage 2: copy samples (the caller keeps ownership of its slices).
//   - Stage 3: covariance → Jacobi eigen → optional descending sort → first k.
//
// Errors: ErrDimension for any size violation; wrapped matrix errors for
// non-finite values or an eigen solver failure.
// Complexity: O(M·N² + sweeps·N³).
func Fit(samples [][]float64, numPoints, k int, opts ...Option) (*Space, error) {
	if numPoints <= 0 {
		return nil, spaceErrorf(opFit, ErrDimension, "points per shape %d", numPoints)
	}
	if err := checkComponents(numPoints, k); err != nil {
		return nil, err
	}
	s := &Space{numPoints: numPoints, k: k, opts: gatherOptions(opts...)}
	if err := s.refit(copySamples(samples)); err != nil {
		return nil, err
	}

	return s, nil
}

// checkComponents enforces 1 ≤ k ≤ 2N−1.
func checkComponents(numPoints, k int) error {
	if k < 1 || k > 2*numPoints-1 {
		return spaceErrorf(opFit, ErrDimension, "%d components for %d coordinates", k, 2*numPoints)
	}

	return nil
}

// MaxComponents returns the largest component count a space over numPoints
// points can keep (2N−1).
func MaxComponents(numPoints int) int { return 2*numPoints - 1 }

// refit recomputes mean, components and variances from samples and commits
// them together with the samples only when every stage succeeded.
func (s *Space) refit(samples [][]float64) error {
	dim := 2 * s.numPoints
	if len(samples) < 2 {
		return spaceErrorf(opFit, ErrDimension, "%d samples, need at least 2", len(samples))
	}
	for i, row := range samples {
		if len(row) != dim {
			return spaceErrorf(opFit, ErrDimension, "sample %d has %d coordinates, want %d", i, len(row), dim)
		}
	}

	X, err := matrix.NewDenseFromRows(samples)
	if err != nil {
		return spaceErrorf(opFit, err, "sample matrix")
	}
	cov, means, err := matrix.Covariance(X)
	if err != nil {
		return spaceErrorf(opFit, err, "covariance")
	}
	vals, vecs, err := matrix.Eigen(cov, s.opts.eigenOpts...)
	if err != nil {
		return spaceErrorf(opFit, err, "eigen decomposition")
	}
	if !s.opts.rawOrder {
		if vals, vecs, err = matrix.SortEigen(vals, vecs); err != nil {
			return spaceErrorf(opFit, err, "ordering components")
		}
	}

	comps, err := matrix.NewDense(dim, s.k)
	if err != nil {
		return spaceErrorf(opFit, err, "components")
	}
	var i, j int
	var v float64
	for i = 0; i < dim; i++ {
		for j = 0; j < s.k; j++ {
			v, _ = vecs.At(i, j) // in range: k ≤ dim
			if err = comps.Set(i, j, v); err != nil {
				return spaceErrorf(opFit, err, "components")
			}
		}
	}

	s.samples = samples
	s.mean = means
	s.components = comps
	s.variances = append([]float64(nil), vals[:s.k]...)

	return nil
}

// Synthesize returns mean + components·params.
// Errors: ErrDimension when len(params) != K.
// Complexity: O(N·K).
func (s *Space) Synthesize(params []float64) ([]float64, error) {
	if len(params) != s.k {
		return nil, spaceErrorf(opSynthesize, ErrDimension, "%d parameters, want %d", len(params), s.k)
	}
	offset, err := matrix.MatVec(s.components, params)
	if err != nil {
		return nil, spaceErrorf(opSynthesize, err, "projection")
	}
	for i := range offset {
		offset[i] += s.mean[i]
	}

	return offset, nil
}

// Decompose projects shape onto the components: params = componentsᵀ·(shape − mean).
// residual is the mean squared error of reconstructing shape from params.
// Errors: ErrDimension when len(shape) != 2N.
// Complexity: O(N·K).
func (s *Space) Decompose(shape []float64) (params []float64, residual float64, err error) {
	dim := 2 * s.numPoints
	if len(shape) != dim {
		return nil, 0, spaceErrorf(opDecompose, ErrDimension, "%d coordinates, want %d", len(shape), dim)
	}
	centred := make([]float64, dim)
	for i := range shape {
		centred[i] = shape[i] - s.mean[i]
	}
	if params, err = matrix.MatTVec(s.components, centred); err != nil {
		return nil, 0, spaceErrorf(opDecompose, err, "projection")
	}
	approx, err := s.Synthesize(params)
	if err != nil {
		return nil, 0, err
	}
	var d float64
	for i := range shape {
		d = shape[i] - approx[i]
		residual += d * d
	}

	return params, residual / float64(dim), nil
}

// Extend appends shape to the sample matrix and refits the whole model.
// On error the previous fit is kept unchanged.
// Complexity: O(M·N² + sweeps·N³).
func (s *Space) Extend(shape []float64) error {
	dim := 2 * s.numPoints
	if len(shape) != dim {
		return spaceErrorf(opExtend, ErrDimension, "%d coordinates, want %d", len(shape), dim)
	}
	next := make([][]float64, len(s.samples), len(s.samples)+1)
	copy(next, s.samples)
	next = append(next, append([]float64(nil), shape...))

	return s.refit(next)
}

// NumPoints returns N, the number of points per shape.
func (s *Space) NumPoints() int { return s.numPoints }

// NumComponents returns K, the parameter-vector length.
func (s *Space) NumComponents() int { return s.k }

// NumSamples returns M, the number of samples in the current fit.
func (s *Space) NumSamples() int { return len(s.samples) }

// Mean returns a copy of the mean shape.
func (s *Space) Mean() []float64 { return append([]float64(nil), s.mean...) }

// Variances returns a copy of the per-component variances.
func (s *Space) Variances() []float64 { return append([]float64(nil), s.variances...) }

// Component returns a copy of principal component i (length 2N).
// Errors: ErrDimension for i outside [0, K).
func (s *Space) Component(i int) ([]float64, error) {
	if i < 0 || i >= s.k {
		return nil, spaceErrorf(opComponent, ErrDimension, "component %d of %d", i, s.k)
	}

	return s.components.Col(i)
}

// Samples returns a deep copy of the sample matrix.
func (s *Space) Samples() [][]float64 { return copySamples(s.samples) }

// Zero returns a zero parameter vector of length K.
func (s *Space) Zero() []float64 { return make([]float64, s.k) }

func copySamples(in [][]float64) [][]float64 {
	out := make([][]float64, len(in))
	for i, row := range in {
		out[i] = append([]float64(nil), row...)
	}

	return out
}
