// SPDX-License-Identifier: MIT

// Package glyphlearn learns handwritten glyphs from a human teacher.
//
// What is glyphlearn?
//
//	For every glyph type (a letter, a digit) a PCA "shape space" is fitted over
//	a demonstration dataset. One coordinate of that space is then searched
//	adaptively toward the value the teacher accepts, driven by pairwise or
//	groupwise choices between generated shapes, or by whole-shape
//	demonstrations that are blended into the current estimate.
//
// Under the hood, everything is organized under these subpackages:
//
//	matrix/      dense row-major matrix, covariance, Jacobi eigen decomposition
//	shapespace/  PCA fit, synthesis, decomposition, sampling, dataset IO
//	learner/     bounds-narrowing parameter search for one glyph
//	config/      YAML session configuration and parameter-seed files
//	session/     registry of learners across collections (words), audit log
//
// Quick example:
//
//	gen, _ := config.NewGenerator(cfg)
//	s := session.New(gen)
//	seen, _ := s.NewCollection([]string{"c", "a", "t"})
//	shape, _ := s.StartNext()
//	res, _ := s.Feedback(shape.Position, learner.GroupChoice(0), false)
//
// Logging is silent by default; call SetLogger to enable it.
package glyphlearn
