// SPDX-License-Identifier: MIT

package shapespace

import (
	"errors"
	"fmt"
)

var (
	// ErrDimension reports a shape, parameter vector, index list or sample set
	// whose size does not match the space (or too few samples to fit).
	ErrDimension = errors.New("shapespace: dimension mismatch")

	// ErrDatasetFormat reports a malformed dataset header or row.
	ErrDatasetFormat = errors.New("shapespace: malformed dataset")

	// ErrInvalidBounds reports an interval with Min > Max or a non-finite end.
	ErrInvalidBounds = errors.New("shapespace: invalid bounds")

	// ErrDegenerateShape reports a shape whose points (nearly) coincide, so it
	// cannot be normalized.
	ErrDegenerateShape = errors.New("shapespace: degenerate shape")
)

// Operation tags used when wrapping.
const (
	opFit        = "Fit"
	opSynthesize = "Synthesize"
	opComponent  = "Component"
	opDecompose  = "Decompose"
	opSample     = "Sample"
	opExtend     = "Extend"
	opRead       = "ReadDataset"
	opWrite      = "WriteDataset"
	opGeometry   = "Geometry"
)

// spaceErrorf wraps err with an operation tag and a formatted detail.
func spaceErrorf(op string, err error, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
