// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the iterative kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper that applies defaults then user options.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Safe by construction: panic only on invalid parameters (programmer error).

package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative convergence threshold for Eigen: sweeps stop
	// once the off-diagonal Frobenius norm is ≤ eps × the input's Frobenius norm.
	DefaultEpsilon = 1e-12

	// DefaultMaxSweeps caps the number of full cyclic Jacobi sweeps.
	// Quadratic convergence makes 10..20 sweeps typical even for n in the hundreds.
	DefaultMaxSweeps = 100

	// DefaultSymmetryTol is the absolute tolerance used to reject asymmetric input.
	DefaultSymmetryTol = 1e-9
)

// ---------- Internal panic messages ----------

const (
	panicEpsilonInvalid  = "matrix: WithEpsilon: eps must be finite, positive"
	panicSweepsInvalid   = "matrix: WithMaxSweeps: sweeps must be > 0"
	panicSymmetryInvalid = "matrix: WithSymmetryTol: tol must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds resolved configuration. Fields are unexported; use WithX.
type Options struct {
	eps         float64
	maxSweeps   int
	symmetryTol float64
}

// WithEpsilon sets the relative convergence threshold for Eigen.
// Panics if eps is NaN, ±Inf or ≤ 0.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithMaxSweeps caps the number of Jacobi sweeps. Panics if n ≤ 0.
func WithMaxSweeps(n int) Option {
	if n <= 0 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = n }
}

// WithSymmetryTol sets the absolute asymmetry tolerance checked before Eigen.
// Panics if tol is NaN, ±Inf or negative.
func WithSymmetryTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicSymmetryInvalid)
	}

	return func(o *Options) { o.symmetryTol = tol }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:         DefaultEpsilon,
		maxSweeps:   DefaultMaxSweeps,
		symmetryTol: DefaultSymmetryTol,
	}
}

// gatherOptions applies user options over the defaults, skipping nil entries.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
