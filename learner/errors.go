// SPDX-License-Identifier: MIT

package learner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings reports Settings that cannot drive a search.
	ErrInvalidSettings = errors.New("learner: invalid settings")

	// ErrChoiceMode reports a groupwise choice given to a pairwise learner or
	// the reverse.
	ErrChoiceMode = errors.New("learner: choice does not match comparison mode")

	// ErrUnknownAttempt reports a groupwise choice that indexes no recorded attempt.
	ErrUnknownAttempt = errors.New("learner: unknown attempt")

	// ErrInvertedBounds reports an interval with Min > Max (or a non-finite end).
	ErrInvertedBounds = errors.New("learner: inverted bounds")

	// ErrNotStarted reports a search operation called before Start or StartAt.
	ErrNotStarted = errors.New("learner: search not started")
)

const (
	opNew           = "New"
	opStart         = "Start"
	opPropose       = "Propose"
	opFeedback      = "RespondToFeedback"
	opDemonstration = "RespondToDemonstration"
	opSetBounds     = "SetBounds"
	opSimulate      = "SimulatedChoice"
)

// learnerErrorf wraps err with an operation tag and a formatted detail.
func learnerErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
