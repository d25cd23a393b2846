// SPDX-License-Identifier: MIT

package learner

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Learner searches the tracked coordinate of one glyph's shape space.
//
// Invariants:
//   - every interval in bounds has Min ≤ Max; updates that would invert one
//     are dropped;
//   - params has length K of the owned space;
//   - hist is non-nil in groupwise mode once the search started.
type Learner struct {
	settings Settings
	space    *shapespace.Space
	opts     options

	params    []float64
	bounds    []shapespace.Bounds // one per Vary entry; only [0] is narrowed
	initial   []shapespace.Bounds
	best      float64
	candidate float64 // latest proposal, the "new" side of a pairwise choice
	hist      *history

	started      bool
	everStarted  bool
	convergedFor int
}

// Proposal is a synthesized shape with its parameter vector and the value
// of the tracked coordinate.
type Proposal struct {
	Shape  []float64
	Params []float64
	Value  float64
}

// StepResult is the outcome of Step. ConvergedFor counts consecutive
// converged steps and is 0 whenever the step did not converge.
type StepResult struct {
	ConvergedFor int
	Proposal
}

// New loads settings.DatasetPaths, fits a space with settings.NumComponents
// components (clamped to the maximum the dataset allows) and builds a
// Learner over it.
//
// Errors: ErrInvalidSettings; dataset and fit errors from shapespace.
func New(settings Settings, opts ...Option) (*Learner, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if len(settings.DatasetPaths) == 0 {
		return nil, learnerErrorf(opNew, ErrInvalidSettings, "%q: no dataset path", settings.Glyph)
	}
	o := gatherOptions(opts...)
	samples, numPoints, err := shapespace.LoadDataset(settings.DatasetPaths...)
	if err != nil {
		return nil, err
	}
	k := settings.NumComponents
	if k == 0 {
		k = DefaultNumComponents
	}
	if maxK := shapespace.MaxComponents(numPoints); k > maxK {
		k = maxK
	}
	space, err := shapespace.Fit(samples, numPoints, k, o.spaceOpts...)
	if err != nil {
		return nil, err
	}

	return newLearner(settings, space, o)
}

// NewWithSpace builds a Learner over an already fitted space.
// settings.NumComponents and settings.DatasetPaths are not read except for
// persisting extended datasets.
//
// Errors: ErrInvalidSettings, also for varied indices outside the space.
func NewWithSpace(settings Settings, space *shapespace.Space, opts ...Option) (*Learner, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if space == nil {
		return nil, learnerErrorf(opNew, ErrInvalidSettings, "%q: nil space", settings.Glyph)
	}

	return newLearner(settings, space, gatherOptions(opts...))
}

func newLearner(settings Settings, space *shapespace.Space, o options) (*Learner, error) {
	for _, idx := range settings.Vary {
		if idx >= space.NumComponents() {
			return nil, learnerErrorf(opNew, ErrInvalidSettings, "%q: parameter index %d of %d",
				settings.Glyph, idx, space.NumComponents())
		}
	}
	bounds, err := settings.resolveBounds(space)
	if err != nil {
		return nil, err
	}
	settings = settings.clone()
	settings.NumComponents = space.NumComponents()

	l := &Learner{
		settings: settings,
		space:    space,
		opts:     o,
		params:   space.Zero(),
		bounds:   bounds,
		initial:  append([]shapespace.Bounds(nil), bounds...),
	}
	l.log().Info("learner created",
		slog.Int("points", space.NumPoints()),
		slog.Int("components", space.NumComponents()),
		slog.Int("samples", space.NumSamples()),
		slog.Any("bounds", l.bounds[0]),
		slog.String("mode", settings.Mode.String()))

	return l, nil
}

func (l *Learner) log() *slog.Logger {
	return l.opts.log().With(slog.String("glyph", l.settings.Glyph))
}

func (l *Learner) tracked() int { return l.settings.Vary[0] }

// Start resets the parameter vector to zero and sets the tracked coordinate
// to Settings.InitialValue (clamped into the bounds) or, without one, draws
// every varied coordinate uniformly from its bounds. In groupwise mode the
// attempt history restarts from the current bounds and the start vector.
func (l *Learner) Start() (Proposal, error) {
	var (
		shape []float64
		err   error
	)
	params := l.space.Zero()
	if v := l.settings.InitialValue; v != nil {
		params[l.tracked()] = l.bounds[0].Clamp(*v)
		shape, err = l.space.Synthesize(params)
	} else {
		shape, params, err = l.space.SampleUniform(params, l.settings.Vary, l.bounds)
	}
	if err != nil {
		return Proposal{}, err
	}
	l.begin(params)

	return Proposal{Shape: shape, Params: append([]float64(nil), params...), Value: l.best}, nil
}

// StartAt is Start with the tracked coordinate drawn from a triangular
// distribution over bounds peaked at seed; bounds replaces the current
// interval. Other varied coordinates peak at the middle of their bounds.
//
// Errors: ErrInvertedBounds for invalid bounds.
func (l *Learner) StartAt(bounds shapespace.Bounds, seed float64) (Proposal, error) {
	if !bounds.Valid() {
		return Proposal{}, learnerErrorf(opStart, ErrInvertedBounds, "[%g, %g]", bounds.Min, bounds.Max)
	}
	l.bounds[0] = bounds
	modes := make([]float64, len(l.settings.Vary))
	for i := range modes {
		modes[i] = math.NaN()
	}
	modes[0] = seed
	shape, params, err := l.space.SampleTriangular(l.space.Zero(), l.settings.Vary, l.bounds, modes)
	if err != nil {
		return Proposal{}, err
	}
	l.begin(params)

	return Proposal{Shape: shape, Params: append([]float64(nil), params...), Value: l.best}, nil
}

// begin commits a start vector. The bounds in force at the first start are
// kept as InitialBounds.
func (l *Learner) begin(params []float64) {
	l.params = params
	l.best = params[l.tracked()]
	l.candidate = l.best
	l.convergedFor = 0
	l.started = true
	if !l.everStarted {
		l.everStarted = true
		l.initial = append(l.initial[:0], l.bounds...)
	}
	if l.settings.Mode == Groupwise {
		l.hist = newHistory(l.bounds[0])
		l.hist.add(l.best, params)
	}
	l.log().Debug("search started", slog.Float64("best", l.best), slog.Any("bounds", l.bounds[0]))
}

// ProposeDifferent draws the tracked coordinate from a triangular
// distribution over the bounds peaked at reference, redrawing up to
// MaxProposalAttempts times until it is at least MinParamDiff away from
// reference. When every draw is too close the last one is returned and a
// warning is logged. The proposal is recorded as an attempt in groupwise mode.
//
// Errors: ErrNotStarted.
func (l *Learner) ProposeDifferent(reference float64) (Proposal, error) {
	if !l.started {
		return Proposal{}, learnerErrorf(opPropose, ErrNotStarted, "%q", l.settings.Glyph)
	}
	var (
		p   Proposal
		err error
	)
	attempts := 0
	for attempts < MaxProposalAttempts {
		attempts++
		if p, err = l.draw(reference); err != nil {
			return Proposal{}, err
		}
		if math.Abs(p.Value-reference) >= l.settings.MinParamDiff {
			break
		}
	}
	if math.Abs(p.Value-reference) < l.settings.MinParamDiff {
		l.log().Warn("no sufficiently different proposal",
			slog.Float64("reference", reference),
			slog.Float64("value", p.Value),
			slog.Int("attempts", attempts),
			slog.Any("bounds", l.bounds[0]))
	}
	l.record(p)

	return p, nil
}

// ProposeSimilar draws once from the triangular distribution peaked at
// reference without a distance requirement.
//
// Errors: ErrNotStarted.
func (l *Learner) ProposeSimilar(reference float64) (Proposal, error) {
	if !l.started {
		return Proposal{}, learnerErrorf(opPropose, ErrNotStarted, "%q", l.settings.Glyph)
	}
	p, err := l.draw(reference)
	if err != nil {
		return Proposal{}, err
	}
	l.record(p)

	return p, nil
}

// draw samples every varied coordinate around the current vector; the
// tracked one peaks at reference.
func (l *Learner) draw(reference float64) (Proposal, error) {
	modes := make([]float64, len(l.settings.Vary))
	for i, idx := range l.settings.Vary {
		modes[i] = l.params[idx]
	}
	modes[0] = reference
	shape, params, err := l.space.SampleTriangular(l.params, l.settings.Vary, l.bounds, modes)
	if err != nil {
		return Proposal{}, err
	}

	return Proposal{Shape: shape, Params: params, Value: params[l.tracked()]}, nil
}

func (l *Learner) record(p Proposal) {
	l.candidate = p.Value
	if l.settings.Mode == Groupwise {
		l.hist.add(p.Value, p.Params)
	}
}

// RespondToFeedback updates the best value and bounds from choice.
//
// Groupwise: the chosen attempt's tracked value becomes the best; the bounds
// become its sorted neighbours (moved inward by MinParamDiff unless they are
// the starting ends) and the parameter vector moves half-way to the chosen
// attempt. Pairwise: the preferred side becomes the best and is written into
// the vector; the other side replaces the lower bound if it is the smaller
// value, the upper bound otherwise. Bound updates that would invert the
// interval are dropped.
//
// Errors: ErrNotStarted, ErrChoiceMode, ErrUnknownAttempt.
func (l *Learner) RespondToFeedback(choice Choice) error {
	if !l.started {
		return learnerErrorf(opFeedback, ErrNotStarted, "%q", l.settings.Glyph)
	}
	if choice.Mode() != l.settings.Mode {
		return learnerErrorf(opFeedback, ErrChoiceMode, "%s choice for a %s learner", choice.Mode(), l.settings.Mode)
	}
	if l.settings.Mode == Groupwise {
		return l.groupwiseFeedback(choice.Index())
	}
	l.pairwiseFeedback(choice.Preference())

	return nil
}

func (l *Learner) groupwiseFeedback(i int) error {
	chosen, ok := l.hist.attempt(i)
	if !ok {
		return learnerErrorf(opFeedback, ErrUnknownAttempt, "attempt %d of %d", i, l.hist.len())
	}
	l.best = chosen[l.tracked()]
	l.setTracked(l.hist.narrow(l.best, l.settings.MinParamDiff))
	for j := range l.params {
		l.params[j] += (chosen[j] - l.params[j]) / 2
	}

	return nil
}

func (l *Learner) pairwiseFeedback(pref Preference) {
	winner, loser := l.best, l.candidate
	if pref == PreferNew {
		winner, loser = l.candidate, l.best
	}
	l.params[l.tracked()] = winner
	l.best = winner
	if loser == winner {
		return
	}
	b := l.bounds[0]
	if loser < winner {
		b.Min = loser
	} else {
		b.Max = loser
	}
	l.setTracked(b)
}

// setTracked replaces the tracked interval unless b is invalid.
func (l *Learner) setTracked(b shapespace.Bounds) {
	if !b.Valid() {
		l.log().Debug("bounds update dropped",
			slog.Any("current", l.bounds[0]), slog.Any("rejected", b))
		return
	}
	l.bounds[0] = b
	l.log().Debug("bounds narrowed", slog.Float64("best", l.best), slog.Any("bounds", b))
}

// Converged reports whether the interval leaves no room for a value at least
// MinParamDiff (plus ConvergenceTolerance) away from the best on either side.
func (l *Learner) Converged() bool {
	limit := l.settings.MinParamDiff + ConvergenceTolerance
	b := l.bounds[0]

	return b.Max-l.best <= limit && l.best-b.Min <= limit
}

// Step applies choice, tests convergence and proposes the next shape around
// the best value: a sufficiently different one while searching, a similar
// one once converged.
//
// Errors: as RespondToFeedback.
func (l *Learner) Step(choice Choice) (StepResult, error) {
	if err := l.RespondToFeedback(choice); err != nil {
		return StepResult{}, err
	}
	var (
		p   Proposal
		err error
	)
	if l.Converged() {
		l.convergedFor++
		p, err = l.ProposeSimilar(l.best)
	} else {
		l.convergedFor = 0
		p, err = l.ProposeDifferent(l.best)
	}
	if err != nil {
		return StepResult{}, err
	}

	return StepResult{ConvergedFor: l.convergedFor, Proposal: p}, nil
}

// LearnedShape synthesizes the current parameter vector.
func (l *Learner) LearnedShape() (shape, params []float64, err error) {
	if shape, err = l.space.Synthesize(l.params); err != nil {
		return nil, nil, err
	}

	return shape, l.Params(), nil
}

// Params returns a copy of the current parameter vector.
func (l *Learner) Params() []float64 { return append([]float64(nil), l.params...) }

// Best returns the best tracked value so far.
func (l *Learner) Best() float64 { return l.best }

// Candidate returns the latest proposed tracked value.
func (l *Learner) Candidate() float64 { return l.candidate }

// Started reports whether Start or StartAt has been called.
func (l *Learner) Started() bool { return l.started }

// ConvergedFor returns the number of consecutive converged steps.
func (l *Learner) ConvergedFor() int { return l.convergedFor }

// Attempts returns the number of recorded groupwise attempts.
func (l *Learner) Attempts() int {
	if l.hist == nil {
		return 0
	}

	return l.hist.len()
}

// Bounds returns the tracked coordinate's interval.
func (l *Learner) Bounds() shapespace.Bounds { return l.bounds[0] }

// SetBounds replaces the tracked coordinate's interval.
// Errors: ErrInvertedBounds, leaving the interval unchanged.
func (l *Learner) SetBounds(b shapespace.Bounds) error {
	if !b.Valid() {
		return learnerErrorf(opSetBounds, ErrInvertedBounds, "[%g, %g]", b.Min, b.Max)
	}
	l.bounds[0] = b

	return nil
}

// InitialBounds returns the tracked interval in force when the search first
// started (before that, the one resolved from Settings).
func (l *Learner) InitialBounds() shapespace.Bounds { return l.initial[0] }

// Space returns the owned shape space.
func (l *Learner) Space() *shapespace.Space { return l.space }

// Settings returns a copy of the settings with NumComponents resolved.
func (l *Learner) Settings() Settings { return l.settings.clone() }
