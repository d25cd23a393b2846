// SPDX-License-Identifier: MIT

package shapespace

import (
	"math"

	"github.com/paulmach/orb"
)

// degenerateScale is the extent below which a shape is treated as a point.
const degenerateScale = 1e-10

// ToPath converts a flat xx..yy.. shape into a polyline.
// Errors: ErrDimension for an empty or odd-length shape.
func ToPath(shape []float64) (orb.LineString, error) {
	if len(shape) == 0 || len(shape)%2 != 0 {
		return nil, spaceErrorf(opGeometry, ErrDimension, "%d coordinates", len(shape))
	}
	n := len(shape) / 2
	ls := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		ls[i] = orb.Point{shape[i], shape[n+i]}
	}

	return ls, nil
}

// FromPath flattens a polyline into the xx..yy.. layout.
func FromPath(ls orb.LineString) []float64 {
	n := len(ls)
	shape := make([]float64, 2*n)
	for i, p := range ls {
		shape[i] = p[0]
		shape[n+i] = p[1]
	}

	return shape
}

// Resample returns n points equally spaced by arc length along ls, keeping
// its first and last points. It adapts free-hand strokes to a space's point
// count before Decompose. A line with fewer than two points, or zero length,
// is repeated.
// Errors: ErrDimension for n < 0.
func Resample(ls orb.LineString, n int) (orb.LineString, error) {
	if n < 0 {
		return nil, spaceErrorf(opGeometry, ErrDimension, "resample to %d points", n)
	}
	out := make(orb.LineString, n)
	if n == 0 || len(ls) == 0 {
		return out, nil
	}
	if len(ls) < 2 || n < 2 {
		for i := range out {
			out[i] = ls[0]
		}
		return out, nil
	}

	cum := make([]float64, len(ls))
	for i := 1; i < len(ls); i++ {
		cum[i] = cum[i-1] + math.Hypot(ls[i][0]-ls[i-1][0], ls[i][1]-ls[i-1][1])
	}
	total := cum[len(cum)-1]
	if total == 0 {
		for i := range out {
			out[i] = ls[0]
		}
		return out, nil
	}

	out[0], out[n-1] = ls[0], ls[len(ls)-1]
	seg := 0
	for i := 1; i < n-1; i++ {
		target := total * float64(i) / float64(n-1)
		for seg < len(cum)-2 && cum[seg+1] < target {
			seg++
		}
		segLen := cum[seg+1] - cum[seg]
		if segLen == 0 {
			out[i] = ls[seg]
			continue
		}
		t := (target - cum[seg]) / segLen
		out[i] = orb.Point{
			ls[seg][0] + t*(ls[seg+1][0]-ls[seg][0]),
			ls[seg][1] + t*(ls[seg+1][1]-ls[seg][1]),
		}
	}

	return out, nil
}

// Centre returns the centre of the shape's bounding box.
func Centre(shape []float64) (orb.Point, error) {
	ls, err := ToPath(shape)
	if err != nil {
		return orb.Point{}, err
	}

	return ls.Bound().Center(), nil
}

// Normalize centres the shape's bounding box on the origin and scales it so
// that its larger side is 1.
// Errors: ErrDimension, ErrDegenerateShape when both sides are ~0.
func Normalize(shape []float64) ([]float64, error) {
	return normalizeBy(shape, func(b orb.Bound) float64 {
		return math.Max(b.Max[0]-b.Min[0], b.Max[1]-b.Min[1])
	})
}

// NormalizeHeight centres the shape's bounding box on the origin and scales
// it so that its height is 1.
// Errors: ErrDimension, ErrDegenerateShape for a flat shape.
func NormalizeHeight(shape []float64) ([]float64, error) {
	return normalizeBy(shape, func(b orb.Bound) float64 { return b.Max[1] - b.Min[1] })
}

func normalizeBy(shape []float64, scaleOf func(orb.Bound) float64) ([]float64, error) {
	ls, err := ToPath(shape)
	if err != nil {
		return nil, err
	}
	b := ls.Bound()
	scale := scaleOf(b)
	if scale < degenerateScale {
		return nil, spaceErrorf(opGeometry, ErrDegenerateShape, "extent %g", scale)
	}
	c := b.Center()
	for i := range ls {
		ls[i] = orb.Point{(ls[i][0] - c[0]) / scale, (ls[i][1] - c[1]) / scale}
	}

	return FromPath(ls), nil
}
