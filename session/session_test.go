// SPDX-License-Identifier: MIT

package session_test

import (
	"bufio"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/glyphlearn/learner"
	"github.com/katalvlaran/glyphlearn/session"
	"github.com/katalvlaran/glyphlearn/shapespace"
)

const numPoints = 4

// writeDataset stores twelve deterministic 4-point shapes at dir/name.dat.
func writeDataset(t *testing.T, dir, name string) string {
	t.Helper()
	samples := make([][]float64, 12)
	for i := range samples {
		a, b := math.Sin(float64(i)*1.3), math.Cos(float64(i)*0.7)
		samples[i] = []float64{0, 1 + 0.3*b, 1, 0.2 * a, 0, 0.1 * b, 1 + 0.5*a, 1}
	}
	path := filepath.Join(dir, name+".dat")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, shapespace.WriteDataset(f, samples, numPoints))
	require.NoError(t, f.Close())

	return path
}

// provider serves the same dataset for every glyph and counts calls.
type provider struct {
	path  string
	calls map[string]int
	fail  string
}

func (p *provider) Settings(glyph string) (learner.Settings, error) {
	p.calls[glyph]++
	if glyph == p.fail {
		return learner.Settings{}, errors.New("no such glyph")
	}
	lo, hi, zero := -6.0, 6.0, 0.0

	return learner.Settings{
		DatasetPaths:  []string{p.path},
		Vary:          []int{0},
		InitialBounds: []learner.OptionalBounds{{Min: &lo, Max: &hi}},
		InitialValue:  &zero,
		MinParamDiff:  0.4,
		NumComponents: 3,
	}, nil
}

func newSession(t *testing.T, opts ...session.Option) (*session.Session, *provider) {
	t.Helper()
	p := &provider{path: writeDataset(t, t.TempDir(), "glyph"), calls: map[string]int{}}
	opts = append([]session.Option{
		session.WithLearnerOptions(learner.WithSpaceOptions(shapespace.WithSource(rand.NewSource(5)))),
	}, opts...)

	return session.New(p, opts...), p
}

func TestNewCollection_SeenBefore(t *testing.T) {
	t.Parallel()
	s, p := newSession(t)
	require.NotEqual(t, uuid.Nil, s.ID())

	seen, err := s.NewCollection([]string{"c", "a", "t"})
	require.NoError(t, err)
	assert.False(t, seen)
	seen, err = s.NewCollection([]string{"c", "a", "t"})
	require.NoError(t, err)
	assert.True(t, seen)
	seen, err = s.NewCollection([]string{"a", "c", "t"})
	require.NoError(t, err)
	assert.False(t, seen)

	assert.Equal(t, [][]string{{"c", "a", "t"}, {"a", "c", "t"}}, s.Collections())
	assert.Equal(t, []string{"c", "a", "t"}, s.Learned())
	assert.Equal(t, []string{"a", "c", "t"}, s.Current())
	assert.Equal(t, map[string]int{"c": 1, "a": 1, "t": 1}, p.calls)

	_, err = s.NewCollection(nil)
	require.ErrorIs(t, err, session.ErrEmptyCollection)
}

func TestNewCollection_SharesLearner(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	_, err := s.NewCollection([]string{"a", "b"})
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)
	res, err := s.Feedback(0, learner.GroupChoice(0), false)
	require.NoError(t, err)
	_, err = s.Feedback(0, learner.GroupChoice(1), true)
	require.NoError(t, err)
	require.NotNil(t, res.Shape)

	first, ok := s.Learner("a")
	require.True(t, ok)
	bounds := first.Bounds()
	attempts := first.Attempts()

	_, err = s.NewCollection([]string{"c", "a"})
	require.NoError(t, err)
	again, err := s.LearnerAt(1)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, bounds, again.Bounds())
	assert.Equal(t, attempts, again.Attempts())
}

func TestNewCollection_BoundExpansion(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t, session.WithBoundExpansion(1))
	_, err := s.NewCollection([]string{"a"})
	require.NoError(t, err)
	l, _ := s.Learner("a")
	require.NoError(t, l.SetBounds(shapespace.Bounds{Min: -1, Max: 2}))

	_, err = s.NewCollection([]string{"a", "a"})
	require.NoError(t, err)
	// Expanded once per appearance.
	assert.Equal(t, shapespace.Bounds{Min: -3, Max: 4}, l.Bounds())

	n, _ := newSession(t, session.WithBoundExpansion(-1))
	_, err = n.NewCollection([]string{"a"})
	require.NoError(t, err)
	nl, _ := n.Learner("a")
	require.NoError(t, nl.SetBounds(shapespace.Bounds{Min: 0, Max: 1}))
	_, err = n.NewCollection([]string{"a"})
	require.NoError(t, err)
	assert.Equal(t, shapespace.Bounds{Min: 0, Max: 1}, nl.Bounds(), "inverting expansion is dropped")
}

func TestNewCollection_FailureCommitsNothing(t *testing.T) {
	t.Parallel()
	s, p := newSession(t)
	p.fail = "x"
	_, err := s.NewCollection([]string{"a", "x"})
	require.Error(t, err)
	assert.Empty(t, s.Learned())
	assert.Empty(t, s.Current())
	assert.Empty(t, s.Collections())
	_, ok := s.Learner("a")
	assert.False(t, ok)
}

func TestStartNext(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	_, err := s.NewCollection([]string{"a", "b", "a"})
	require.NoError(t, err)

	for pos, glyph := range []string{"a", "b", "a"} {
		sh, err := s.StartNext()
		require.NoError(t, err)
		assert.Equal(t, glyph, sh.Glyph)
		assert.Equal(t, pos, sh.Position)
		assert.Equal(t, []int{0}, sh.Vary)
		assert.Len(t, sh.Params, 3)
		assert.Len(t, sh.Path, 2*numPoints)
		assert.Len(t, sh.Points(), numPoints)
		assert.NotEqual(t, uuid.Nil, sh.ID)
	}
	_, err = s.StartNext()
	require.ErrorIs(t, err, session.ErrCursorExhausted)
	assert.Equal(t, 3, s.Cursor())
}

func TestStartNext_ReusePrevious(t *testing.T) {
	t.Parallel()
	for _, reuse := range []bool{true, false} {
		s, _ := newSession(t, session.WithReusePrevious(reuse))
		_, err := s.NewCollection([]string{"a"})
		require.NoError(t, err)
		_, err = s.StartNext()
		require.NoError(t, err)
		_, err = s.Feedback(0, learner.GroupChoice(0), false)
		require.NoError(t, err)
		_, err = s.Feedback(0, learner.GroupChoice(1), false)
		require.NoError(t, err)

		l, _ := s.Learner("a")
		learned, params, err := l.LearnedShape()
		require.NoError(t, err)

		_, err = s.NewCollection([]string{"a"})
		require.NoError(t, err)
		sh, err := s.StartNext()
		require.NoError(t, err)
		if reuse {
			assert.Equal(t, learned, sh.Path)
			assert.Equal(t, params, sh.Params)
		} else {
			assert.Equal(t, []float64{0, 0, 0}, sh.Params)
		}
	}
}

func TestUnknownPosition(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	_, err := s.Feedback(0, learner.GroupChoice(0), false)
	require.ErrorIs(t, err, session.ErrUnknownReference)

	_, err = s.NewCollection([]string{"a"})
	require.NoError(t, err)
	_, err = s.Feedback(1, learner.GroupChoice(0), true)
	require.ErrorIs(t, err, session.ErrUnknownReference)
	_, err = s.RespondToDemonstration(-1, make([]float64, 2*numPoints))
	require.ErrorIs(t, err, session.ErrUnknownReference)
	require.ErrorIs(t, s.ResetBounds(3), session.ErrUnknownReference)
	_, err = s.LearnerAt(2)
	require.ErrorIs(t, err, session.ErrUnknownReference)
	_, err = s.SimulatedChoice(5, 0)
	require.ErrorIs(t, err, session.ErrUnknownReference)
}

func TestFeedback(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	_, err := s.NewCollection([]string{"a", "b"})
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)

	res, err := s.Feedback(1, learner.GroupChoice(0), false)
	require.NoError(t, err)
	require.NotNil(t, res.Shape)
	assert.Equal(t, "b", res.Shape.Glyph)
	assert.Equal(t, 1, res.Shape.Position)
	assert.False(t, res.Converged)

	c, err := s.SimulatedChoice(1, res.Shape.Params[0])
	require.NoError(t, err)
	assert.Equal(t, learner.GroupChoice(1), c)
	res, err = s.Feedback(1, c, true)
	require.NoError(t, err)
	assert.Nil(t, res.Shape)

	_, err = s.Feedback(1, learner.PairChoice(learner.PreferNew), false)
	require.ErrorIs(t, err, learner.ErrChoiceMode)
}

func TestResetBounds(t *testing.T) {
	t.Parallel()
	s, _ := newSession(t)
	_, err := s.NewCollection([]string{"a"})
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)
	l, _ := s.Learner("a")
	require.NoError(t, l.SetBounds(shapespace.Bounds{Min: 1, Max: 2}))

	require.NoError(t, s.ResetBounds(0))
	assert.Equal(t, shapespace.Bounds{Min: -6, Max: 6}, l.Bounds())
}

type record struct {
	Msg      string    `json:"msg"`
	Session  string    `json:"session"`
	Kind     string    `json:"kind"`
	Glyph    string    `json:"glyph"`
	Position int       `json:"position"`
	Params   []float64 `json:"params"`
	Path     []float64 `json:"path"`
}

func TestAuditLog(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	audit, closer, err := session.OpenAuditLog(dir)
	require.NoError(t, err)

	s, _ := newSession(t, session.WithAuditLogger(audit))
	_, err = s.NewCollection([]string{"a", "a"})
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)
	_, err = s.StartNext()
	require.NoError(t, err)

	l, _ := s.Learner("a")
	demo, err := l.Space().Synthesize([]float64{1, 0, 0})
	require.NoError(t, err)
	model, err := s.RespondToDemonstration(1, demo)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, model.Params[0], 1e-9)
	require.NoError(t, closer.Close())

	f, err := os.Open(filepath.Join(dir, session.DefaultAuditFile))
	require.NoError(t, err)
	defer f.Close()

	var events []record
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, 1<<20)
	for sc.Scan() {
		var r record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		assert.Equal(t, s.ID().String(), r.Session)
		if r.Msg == "learning event" {
			events = append(events, r)
		}
	}
	require.NoError(t, sc.Err())

	kinds := make([]string, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []string{
		session.KindStarting,
		session.KindRestarting,
		session.KindDemonstration,
		session.KindGeneratedModel,
	}, kinds)
	assert.Equal(t, 1, events[2].Position)
	assert.Equal(t, demo, events[2].Path)
	assert.InDelta(t, 1.0, events[2].Params[0], 1e-9)
	assert.Equal(t, model.Path, events[3].Path)
}

func TestSettingsFunc(t *testing.T) {
	t.Parallel()
	var got string
	f := session.SettingsFunc(func(glyph string) (learner.Settings, error) {
		got = glyph
		return learner.Settings{}, errors.New("unavailable")
	})
	s := session.New(f)
	_, err := s.NewCollection([]string{"z"})
	require.Error(t, err)
	assert.Equal(t, "z", got)

	assert.Panics(t, func() { session.New(nil) })
}
