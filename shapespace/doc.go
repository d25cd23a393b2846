// SPDX-License-Identifier: MIT

// Package shapespace models one glyph type as a PCA shape space.
//
// A shape is 2N reals laid out as N x-coordinates followed by N y-coordinates.
// Fit centres a dataset of M such samples, eigen-decomposes its covariance and
// keeps K principal components; a shape is then
//
//	shape = mean + components · params
//
// with params the K-dimensional parameter vector. Synthesize and Decompose move
// between the two representations, SampleUniform and SampleTriangular draw
// random parameter values for selected coordinates, and Extend appends a sample
// and refits the whole model.
//
// Datasets are plain text (see ReadDataset):
//
//	<sample_count>
//	<points_per_shape>
//	<2N space-separated floats>   // one line per sample
//
// Geometry helpers (ToPath, FromPath, Resample, Normalize, ...) convert between
// the flat layout and github.com/paulmach/orb polylines for drawing front ends.
//
// A Space is not safe for concurrent use.
package shapespace
