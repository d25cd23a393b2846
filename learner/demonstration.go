// SPDX-License-Identifier: MIT

package learner

import (
	"log/slog"
)

// Demonstration is the outcome of RespondToDemonstration.
type Demonstration struct {
	// Shape is the synthesized shape of the updated vector.
	Shape []float64
	// Params is the updated vector.
	Params []float64
	// Decomposed is the demonstration's own parameter vector.
	Decomposed []float64
	// Residual is the mean squared error of reconstructing the demonstration.
	Residual float64
}

// RespondToDemonstration moves the parameter vector half-way toward the
// decomposition of shape. With ExtendOnDemonstration the shape first joins
// the space's samples (and the dataset file with PersistExtended). In a
// started groupwise search the updated vector is recorded as an attempt.
//
// Errors: shapespace.ErrDimension for a shape of the wrong length; persist
// errors after a successful extension (the vector is then left unchanged).
func (l *Learner) RespondToDemonstration(shape []float64) (Demonstration, error) {
	if l.settings.ExtendOnDemonstration {
		if err := l.space.Extend(shape); err != nil {
			return Demonstration{}, err
		}
		if l.settings.PersistExtended {
			if err := l.space.Persist(l.settings.DatasetPaths[0]); err != nil {
				return Demonstration{}, learnerErrorf(opDemonstration, err, "%q", l.settings.Glyph)
			}
		}
	}
	decomposed, residual, err := l.space.Decompose(shape)
	if err != nil {
		return Demonstration{}, err
	}
	for i := range l.params {
		l.params[i] += (decomposed[i] - l.params[i]) / 2
	}
	if l.started && l.settings.Mode == Groupwise {
		v := l.params[l.tracked()]
		l.hist.add(v, l.params)
		l.candidate = v
	}
	synth, err := l.space.Synthesize(l.params)
	if err != nil {
		return Demonstration{}, err
	}
	l.log().Debug("demonstration blended",
		slog.Float64("residual", residual),
		slog.Float64("tracked", l.params[l.tracked()]),
		slog.Bool("extended", l.settings.ExtendOnDemonstration))

	return Demonstration{
		Shape:      synth,
		Params:     l.Params(),
		Decomposed: decomposed,
		Residual:   residual,
	}, nil
}
