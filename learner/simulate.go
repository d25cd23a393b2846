// SPDX-License-Identifier: MIT

package learner

import "math"

// SimulatedChoice stands in for a teacher who wants the tracked coordinate
// at goal. Groupwise it picks the attempt closest to goal (the earliest on
// ties); pairwise it prefers the new proposal only when it is strictly
// closer than the best.
//
// Errors: ErrNotStarted.
func (l *Learner) SimulatedChoice(goal float64) (Choice, error) {
	if !l.started {
		return Choice{}, learnerErrorf(opSimulate, ErrNotStarted, "%q", l.settings.Glyph)
	}
	if l.settings.Mode == Pairwise {
		if math.Abs(l.candidate-goal) < math.Abs(l.best-goal) {
			return PairChoice(PreferNew), nil
		}
		return PairChoice(PreferOld), nil
	}

	t := l.tracked()
	pick, dist := 0, math.Inf(1)
	for i, a := range l.hist.attempts {
		if d := math.Abs(a[t] - goal); d < dist {
			pick, dist = i, d
		}
	}

	return GroupChoice(pick), nil
}
