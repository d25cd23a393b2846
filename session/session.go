// SPDX-License-Identifier: MIT

package session

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/katalvlaran/glyphlearn/learner"
)

// SettingsProvider supplies the learner settings of a glyph type the first
// time it appears. config.Generator implements it.
type SettingsProvider interface {
	Settings(glyph string) (learner.Settings, error)
}

// SettingsFunc adapts a function to SettingsProvider.
type SettingsFunc func(glyph string) (learner.Settings, error)

// Settings calls f(glyph).
func (f SettingsFunc) Settings(glyph string) (learner.Settings, error) { return f(glyph) }

// Session is a registry of learners keyed by glyph type plus the current
// collection and the collections seen so far. It is not safe for concurrent
// use.
type Session struct {
	id       uuid.UUID
	provider SettingsProvider
	opts     options

	learners    map[string]*learner.Learner
	learned     []string   // glyph types in the order they were first seen
	collections [][]string // distinct collections in the order first seen

	current    []string
	seenBefore []bool // per position: glyph learned before that position
	cursor     int
}

// FeedbackResult is the outcome of Feedback. Shape is nil when shape
// generation was skipped.
type FeedbackResult struct {
	ConvergedFor int
	Converged    bool
	Shape        *Shape
}

// New returns an empty session. It panics on a nil provider.
func New(provider SettingsProvider, opts ...Option) *Session {
	if provider == nil {
		panic("session: nil SettingsProvider")
	}
	s := &Session{
		id:       uuid.New(),
		provider: provider,
		opts:     gatherOptions(opts...),
		learners: make(map[string]*learner.Learner),
	}
	s.opts.audit.Info("session started", slog.String("session", s.id.String()))

	return s
}

// ID returns the session identifier carried by every audit record.
func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) log() *slog.Logger {
	return s.opts.log().With(slog.String("session", s.id.String()))
}

// NewCollection makes glyphs the current collection and rewinds the cursor.
// Glyphs never seen get a learner built from the provider's settings; all of
// them are built before anything is committed, so a failure leaves the
// session unchanged. Glyphs seen before keep their learner, with the bounds
// moved by the configured expansion at each appearance (dropped if that
// would invert them). It reports whether the same ordered collection was
// presented before.
//
// Errors: ErrEmptyCollection; provider and learner construction errors.
func (s *Session) NewCollection(glyphs []string) (bool, error) {
	if len(glyphs) == 0 {
		return false, ErrEmptyCollection
	}

	built := make(map[string]*learner.Learner)
	var order []string
	for _, g := range glyphs {
		if _, ok := s.learners[g]; ok {
			continue
		}
		if _, ok := built[g]; ok {
			continue
		}
		settings, err := s.provider.Settings(g)
		if err != nil {
			return false, fmt.Errorf("settings for %q: %w", g, err)
		}
		settings.Glyph = g
		l, err := learner.New(settings, s.opts.learnerOpts...)
		if err != nil {
			return false, fmt.Errorf("learner for %q: %w", g, err)
		}
		built[g] = l
		order = append(order, g)
	}

	seenBefore := make([]bool, len(glyphs))
	known := make(map[string]bool, len(glyphs))
	for g := range s.learners {
		known[g] = true
	}
	for g, l := range built {
		s.learners[g] = l
	}
	s.learned = append(s.learned, order...)
	for i, g := range glyphs {
		seenBefore[i] = known[g]
		known[g] = true
		if seenBefore[i] {
			s.expand(g)
		}
	}

	seen := slices.ContainsFunc(s.collections, func(c []string) bool { return slices.Equal(c, glyphs) })
	if !seen {
		s.collections = append(s.collections, slices.Clone(glyphs))
	}
	s.current = slices.Clone(glyphs)
	s.seenBefore = seenBefore
	s.cursor = 0

	s.log().Info("collection started",
		slog.Any("glyphs", glyphs),
		slog.Bool("seen_before", seen),
		slog.Int("new_learners", len(order)))

	return seen, nil
}

func (s *Session) expand(glyph string) {
	if s.opts.expansion == 0 {
		return
	}
	l := s.learners[glyph]
	b := l.Bounds().Expand(s.opts.expansion)
	if err := l.SetBounds(b); err != nil {
		s.log().Debug("bound expansion dropped", slog.String("glyph", glyph), slog.Any("error", err))
	}
}

// StartNext hands out the shape for the glyph under the cursor and advances
// it. A glyph learned before that position restarts from its learned shape
// when reuse is enabled; otherwise its search starts.
//
// Errors: ErrCursorExhausted (soft) once every position was started;
// learner errors.
func (s *Session) StartNext() (*Shape, error) {
	if s.cursor >= len(s.current) {
		s.log().Warn("no glyph left to start", slog.Int("cursor", s.cursor), slog.Any("collection", s.current))
		return nil, fmt.Errorf("cursor %d of %d: %w", s.cursor, len(s.current), ErrCursorExhausted)
	}
	pos := s.cursor
	glyph := s.current[pos]
	l := s.learners[glyph]

	var (
		path, params []float64
		err          error
		kind         = KindStarting
	)
	if s.opts.reuse && s.seenBefore[pos] {
		kind = KindRestarting
		path, params, err = l.LearnedShape()
	} else {
		var p learner.Proposal
		p, err = l.Start()
		path, params = p.Shape, p.Params
	}
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", kind, glyph, err)
	}
	s.cursor++
	s.audit(kind, glyph, pos, params, path)

	return s.shape(pos, path, params), nil
}

func (s *Session) shape(pos int, path, params []float64) *Shape {
	glyph := s.current[pos]

	return &Shape{
		ID:       uuid.New(),
		Path:     path,
		Glyph:    glyph,
		Position: pos,
		Vary:     s.learners[glyph].Settings().Vary,
		Params:   params,
	}
}

// at resolves a position of the current collection.
func (s *Session) at(op string, pos int) (*learner.Learner, error) {
	if pos < 0 || pos >= len(s.current) {
		s.log().Warn("ignoring event for unknown position", slog.String("op", op), slog.Int("position", pos))
		return nil, fmt.Errorf("%s: position %d of %d: %w", op, pos, len(s.current), ErrUnknownReference)
	}

	return s.learners[s.current[pos]], nil
}

// Feedback routes choice to the learner at position. With skipGeneration the
// learner only updates its best value and bounds; otherwise it also proposes
// the next shape.
//
// Errors: ErrUnknownReference (soft); learner feedback errors.
func (s *Session) Feedback(position int, choice learner.Choice, skipGeneration bool) (FeedbackResult, error) {
	l, err := s.at("Feedback", position)
	if err != nil {
		return FeedbackResult{}, err
	}
	if skipGeneration {
		if err := l.RespondToFeedback(choice); err != nil {
			return FeedbackResult{}, err
		}
		return FeedbackResult{ConvergedFor: l.ConvergedFor(), Converged: l.Converged()}, nil
	}
	res, err := l.Step(choice)
	if err != nil {
		return FeedbackResult{}, err
	}

	return FeedbackResult{
		ConvergedFor: res.ConvergedFor,
		Converged:    res.ConvergedFor > 0,
		Shape:        s.shape(position, res.Shape, res.Params),
	}, nil
}

// RespondToDemonstration routes a demonstrated shape to the learner at
// position and returns its updated model shape. Both the demonstration and
// the generated model are audited.
//
// Errors: ErrUnknownReference (soft); learner demonstration errors.
func (s *Session) RespondToDemonstration(position int, shape []float64) (*Shape, error) {
	l, err := s.at("RespondToDemonstration", position)
	if err != nil {
		return nil, err
	}
	d, err := l.RespondToDemonstration(shape)
	if err != nil {
		return nil, err
	}
	glyph := s.current[position]
	s.audit(KindDemonstration, glyph, position, d.Decomposed, shape)
	s.audit(KindGeneratedModel, glyph, position, d.Params, d.Shape)

	return s.shape(position, d.Shape, d.Params), nil
}

// ResetBounds restores the bounds the learner at position had when its
// search first started.
//
// Errors: ErrUnknownReference (soft).
func (s *Session) ResetBounds(position int) error {
	l, err := s.at("ResetBounds", position)
	if err != nil {
		return err
	}
	from, to := l.Bounds(), l.InitialBounds()
	if err := l.SetBounds(to); err != nil {
		return err
	}
	s.log().Info("bounds reset",
		slog.String("glyph", s.current[position]),
		slog.Any("from", from),
		slog.Any("to", to))

	return nil
}

// SimulatedChoice asks the learner at position for the choice a teacher
// aiming at goal would make.
//
// Errors: ErrUnknownReference (soft); learner.ErrNotStarted.
func (s *Session) SimulatedChoice(position int, goal float64) (learner.Choice, error) {
	l, err := s.at("SimulatedChoice", position)
	if err != nil {
		return learner.Choice{}, err
	}

	return l.SimulatedChoice(goal)
}

// Current returns a copy of the current collection.
func (s *Session) Current() []string { return slices.Clone(s.current) }

// Cursor returns the position StartNext will start next.
func (s *Session) Cursor() int { return s.cursor }

// Learned returns the glyph types with a learner, in the order first seen.
func (s *Session) Learned() []string { return slices.Clone(s.learned) }

// Collections returns the distinct collections presented so far.
func (s *Session) Collections() [][]string {
	out := make([][]string, len(s.collections))
	for i, c := range s.collections {
		out[i] = slices.Clone(c)
	}

	return out
}

// Learner returns the learner registered for glyph.
func (s *Session) Learner(glyph string) (*learner.Learner, bool) {
	l, ok := s.learners[glyph]
	return l, ok
}

// LearnerAt returns the learner at a position of the current collection.
// Errors: ErrUnknownReference (soft).
func (s *Session) LearnerAt(position int) (*learner.Learner, error) {
	return s.at("LearnerAt", position)
}
