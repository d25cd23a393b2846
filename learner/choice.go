// SPDX-License-Identifier: MIT

package learner

import "fmt"

// Preference is a pairwise verdict.
type Preference int

const (
	// PreferOld keeps the current best.
	PreferOld Preference = iota
	// PreferNew accepts the latest proposal.
	PreferNew
)

// Choice is one piece of teacher feedback. Build it with GroupChoice or
// PairChoice; the zero value is GroupChoice(0).
type Choice struct {
	pairwise bool
	index    int
	pref     Preference
}

// GroupChoice picks attempt i, counted in proposal order from the attempt
// recorded by Start.
func GroupChoice(i int) Choice { return Choice{index: i} }

// PairChoice picks the old best or the new proposal.
func PairChoice(p Preference) Choice { return Choice{pairwise: true, pref: p} }

// Mode returns the protocol the choice belongs to.
func (c Choice) Mode() Mode {
	if c.pairwise {
		return Pairwise
	}

	return Groupwise
}

// Index returns the chosen attempt of a groupwise choice.
func (c Choice) Index() int { return c.index }

// Preference returns the verdict of a pairwise choice.
func (c Choice) Preference() Preference { return c.pref }

func (c Choice) String() string {
	if !c.pairwise {
		return fmt.Sprintf("attempt %d", c.index)
	}
	if c.pref == PreferNew {
		return "new"
	}

	return "old"
}
