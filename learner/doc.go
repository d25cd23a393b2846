// SPDX-License-Identifier: MIT

// Package learner searches one coordinate of a shape space's parameter
// vector for the value a human teacher accepts.
//
// A Learner owns a fitted shapespace.Space. Settings.Vary names the
// parameter indices it perturbs; only the first of them (the tracked
// coordinate) drives the search. The search keeps an admissible interval
// (Bounds) around the best value seen so far and narrows it from feedback:
//
//   - Groupwise mode: every proposal is recorded; the teacher picks one
//     attempt out of all of them (GroupChoice). The new interval is spanned by
//     the chosen value's sorted neighbours, nudged inward by MinParamDiff.
//   - Pairwise mode: the teacher compares the latest proposal with the
//     current best (PairChoice). The loser becomes a new interval endpoint.
//
// The search has converged once the interval leaves no room for a value at
// least MinParamDiff away from the best on either side. Demonstrations bypass
// the interval: a drawn shape is decomposed and the parameter vector moves
// half-way toward it.
//
// Typical loop:
//
//	l, err := learner.New(settings)
//	p, err := l.Start()
//	for {
//		res, err := l.Step(learner.GroupChoice(pick))
//		if res.ConvergedFor > 2 { break }
//	}
//
// A Learner is not safe for concurrent use.
package learner
