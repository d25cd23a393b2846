// SPDX-License-Identifier: MIT

package session

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/glyphlearn"
	"github.com/katalvlaran/glyphlearn/learner"
)

// Option configures New.
type Option func(*options)

type options struct {
	expansion   float64
	reuse       bool
	audit       *slog.Logger
	logger      *slog.Logger
	learnerOpts []learner.Option
}

// WithBoundExpansion widens (positive) or narrows (negative) a reused
// learner's bounds on both sides whenever its glyph reappears. Default 0.
func WithBoundExpansion(amount float64) Option {
	return func(o *options) { o.expansion = amount }
}

// WithReusePrevious controls whether a glyph learned in an earlier
// collection restarts from its learned shape (true, the default) or starts a
// fresh search.
func WithReusePrevious(reuse bool) Option {
	return func(o *options) { o.reuse = reuse }
}

// WithAuditLogger sets the logger receiving one record per learning event.
// By default the records are discarded.
func WithAuditLogger(l *slog.Logger) Option {
	return func(o *options) { o.audit = l }
}

// WithLogger sets the diagnostics logger. Without it the session logs
// through glyphlearn.Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithLearnerOptions forwards options to learner.New for every learner the
// session creates.
func WithLearnerOptions(opts ...learner.Option) Option {
	return func(o *options) { o.learnerOpts = append(o.learnerOpts, opts...) }
}

func gatherOptions(user ...Option) options {
	o := options{reuse: true}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.audit == nil {
		o.audit = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	return o
}

func (o options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}

	return glyphlearn.Logger()
}
