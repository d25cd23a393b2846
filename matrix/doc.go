// SPDX-License-Identifier: MIT

// Package matrix provides the small dense linear-algebra kernel behind the
// shape-space model: a row-major Dense type, strict validators, products,
// column statistics (centering, covariance) and a symmetric eigen solver.
//
// What is inside:
//
//   - Dense: flat row-major storage with safe At/Set (errors, never panics).
//   - Mul, Transpose, Scale, MatVec, MatTVec: allocation-per-call kernels.
//   - CenterColumns, Covariance: sample statistics over observation rows.
//   - Eigen: cyclic Jacobi sweeps for real symmetric matrices, returning
//     eigenvalues and an orthonormal eigenvector matrix (columns).
//   - SortEigen: reorders eigen-pairs by descending eigenvalue.
//
// Determinism:
//
//	All loops run in a fixed i→j order; there is no randomness and no map
//	iteration, so repeated calls on equal inputs give bit-identical output.
//
// Errors are package sentinels (errors.go) wrapped with an operation tag;
// match them with errors.Is.
package matrix
