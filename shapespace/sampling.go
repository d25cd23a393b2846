// SPDX-License-Identifier: MIT

package shapespace

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// SampleUniform copies base and replaces coordinate indices[i] with a draw
// from U(bounds[i].Min, bounds[i].Max). It returns the synthesized shape and
// the full parameter vector. base is not modified.
//
// Errors: ErrDimension (base length, index range, fewer bounds than indices),
// ErrInvalidBounds.
func (s *Space) SampleUniform(base []float64, indices []int, bounds []Bounds) (shape, params []float64, err error) {
	if err = s.checkSampling(base, indices, bounds); err != nil {
		return nil, nil, err
	}
	params = append([]float64(nil), base...)
	for i, idx := range indices {
		params[idx] = s.drawUniform(bounds[i])
	}
	if shape, err = s.Synthesize(params); err != nil {
		return nil, nil, err
	}

	return shape, params, nil
}

// SampleTriangular is SampleUniform with a triangular distribution over each
// interval, peaked at modes[i]. A mode outside its interval is clamped into it.
//
// Errors: as SampleUniform, plus ErrDimension when there are fewer modes than indices.
func (s *Space) SampleTriangular(base []float64, indices []int, bounds []Bounds, modes []float64) (shape, params []float64, err error) {
	if err = s.checkSampling(base, indices, bounds); err != nil {
		return nil, nil, err
	}
	if len(modes) < len(indices) {
		return nil, nil, spaceErrorf(opSample, ErrDimension, "%d modes for %d indices", len(modes), len(indices))
	}
	params = append([]float64(nil), base...)
	for i, idx := range indices {
		params[idx] = s.drawTriangular(bounds[i], modes[i])
	}
	if shape, err = s.Synthesize(params); err != nil {
		return nil, nil, err
	}

	return shape, params, nil
}

func (s *Space) checkSampling(base []float64, indices []int, bounds []Bounds) error {
	if len(base) != s.k {
		return spaceErrorf(opSample, ErrDimension, "%d parameters, want %d", len(base), s.k)
	}
	if len(bounds) < len(indices) {
		return spaceErrorf(opSample, ErrDimension, "%d bounds for %d indices", len(bounds), len(indices))
	}
	for i, idx := range indices {
		if idx < 0 || idx >= s.k {
			return spaceErrorf(opSample, ErrDimension, "parameter index %d of %d", idx, s.k)
		}
		if !bounds[i].Valid() {
			return spaceErrorf(opSample, ErrInvalidBounds, "[%g, %g]", bounds[i].Min, bounds[i].Max)
		}
	}

	return nil
}

// drawUniform samples U(Min, Max); a zero-width interval yields Min.
func (s *Space) drawUniform(b Bounds) float64 {
	if b.Min == b.Max {
		return b.Min
	}

	return distuv.Uniform{Min: b.Min, Max: b.Max, Src: s.opts.src}.Rand()
}

// drawTriangular samples Triangle(Min, Max, mode); a zero-width interval yields Min.
func (s *Space) drawTriangular(b Bounds, mode float64) float64 {
	if b.Min == b.Max {
		return b.Min
	}
	if math.IsNaN(mode) {
		mode = b.Min + b.Width()/2
	}

	return distuv.NewTriangle(b.Min, b.Max, b.Clamp(mode), s.opts.src).Rand()
}
