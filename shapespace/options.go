// SPDX-License-Identifier: MIT

package shapespace

import (
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/glyphlearn/matrix"
)

// Option configures Fit and Load.
type Option func(*options)

type options struct {
	rawOrder  bool
	src       rand.Source
	eigenOpts []matrix.Option
}

// WithDecompositionOrder keeps the components in the order the eigen solver
// leaves them instead of sorting by descending variance. Parameter indices then
// depend on the solver and may change across refits; use it only to reproduce
// parametrizations recorded that way.
func WithDecompositionOrder() Option {
	return func(o *options) { o.rawOrder = true }
}

// WithSource sets the random source used by the sampling methods.
// A nil source (the default) draws from gonum's shared global source.
func WithSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithEigenOptions forwards tolerances and sweep limits to matrix.Eigen.
func WithEigenOptions(opts ...matrix.Option) Option {
	return func(o *options) { o.eigenOpts = append(o.eigenOpts, opts...) }
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
