// SPDX-License-Identifier: MIT

package shapespace

import "math"

// Bounds is a closed interval [Min, Max] for one parameter coordinate.
type Bounds struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Valid reports whether both ends are finite and Min ≤ Max.
func (b Bounds) Valid() bool {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) || math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) {
		return false
	}

	return b.Min <= b.Max
}

// Width returns Max − Min.
func (b Bounds) Width() float64 { return b.Max - b.Min }

// Contains reports whether Min ≤ v ≤ Max.
func (b Bounds) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

// Clamp returns v limited to [Min, Max].
func (b Bounds) Clamp(v float64) float64 { return math.Min(math.Max(v, b.Min), b.Max) }

// Expand widens the interval by amount on both sides; a negative amount narrows it.
// The result may be invalid; callers check Valid before committing it.
func (b Bounds) Expand(amount float64) Bounds {
	return Bounds{Min: b.Min - amount, Max: b.Max + amount}
}
