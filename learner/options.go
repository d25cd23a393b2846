// SPDX-License-Identifier: MIT

package learner

import (
	"log/slog"

	"github.com/katalvlaran/glyphlearn"
	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Option configures New and NewWithSpace.
type Option func(*options)

type options struct {
	spaceOpts []shapespace.Option
	logger    *slog.Logger
}

// WithSpaceOptions forwards options to shapespace.Fit when New builds the
// space (for example shapespace.WithSource for reproducible proposals).
// NewWithSpace ignores them.
func WithSpaceOptions(opts ...shapespace.Option) Option {
	return func(o *options) { o.spaceOpts = append(o.spaceOpts, opts...) }
}

// WithLogger sets the learner's logger. Without it the learner logs through
// glyphlearn.Logger(), looked up at every call.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(user ...Option) options {
	var o options
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

func (o options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}

	return glyphlearn.Logger()
}
