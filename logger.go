// SPDX-License-Identifier: MIT

package glyphlearn

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record and reports every level disabled.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var (
	silent = slog.New(discard{})
	active atomic.Pointer[slog.Logger]
)

func init() { active.Store(silent) }

// SetLogger installs l as the diagnostics logger shared by learners and
// sessions that were not given one of their own. nil restores silence.
// Search steps log at Debug, learner and collection lifecycle at Info, and
// absorbed failures (unknown positions, exhausted proposals) at Warn.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	active.Store(l)
}

// Logger returns the installed logger, never nil.
func Logger() *slog.Logger { return active.Load() }
