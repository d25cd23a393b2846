// SPDX-License-Identifier: MIT

package learner

import (
	"slices"
	"sort"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

// history records groupwise attempts.
//
// attempts keeps full parameter vectors in proposal order (what a
// GroupChoice indexes). sorted keeps the tracked values between the two
// interval ends the search started with; equal values are inserted after
// the existing ones.
type history struct {
	attempts [][]float64
	sorted   []float64
}

func newHistory(b shapespace.Bounds) *history {
	return &history{sorted: []float64{b.Min, b.Max}}
}

// add records an attempt whose tracked coordinate is v.
func (h *history) add(v float64, params []float64) {
	h.attempts = append(h.attempts, append([]float64(nil), params...))
	h.sorted = slices.Insert(h.sorted, h.upper(v), v)
}

// upper returns the index of the first sorted value greater than v.
func (h *history) upper(v float64) int {
	return sort.Search(len(h.sorted), func(i int) bool { return h.sorted[i] > v })
}

func (h *history) len() int { return len(h.attempts) }

func (h *history) attempt(i int) ([]float64, bool) {
	if i < 0 || i >= len(h.attempts) {
		return nil, false
	}

	return h.attempts[i], true
}

// narrow returns the interval spanned by the neighbours of best's last
// occurrence. A neighbour that is a recorded attempt (not one of the two
// starting ends) is moved inward by minDiff.
// Complexity: O(log n).
func (h *history) narrow(best, minDiff float64) shapespace.Bounds {
	last := len(h.sorted) - 1
	pos := h.upper(best) - 1
	lo, hi := pos-1, pos+1
	if lo < 0 {
		lo = 0
	}
	if hi > last {
		hi = last
	}
	b := shapespace.Bounds{Min: h.sorted[lo], Max: h.sorted[hi]}
	if lo > 0 {
		b.Min += minDiff
	}
	if hi < last {
		b.Max -= minDiff
	}

	return b
}
