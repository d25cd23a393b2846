// SPDX-License-Identifier: MIT

package session

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/katalvlaran/glyphlearn/shapespace"
)

// Shape is a synthesized glyph handed to the front end.
type Shape struct {
	ID       uuid.UUID `json:"id"`
	Path     []float64 `json:"path"` // xx..yy.. coordinates
	Glyph    string    `json:"glyph"`
	Position int       `json:"position"` // index in the current collection
	Vary     []int     `json:"vary"`
	Params   []float64 `json:"params"`
}

// Points returns Path as a polyline.
func (s *Shape) Points() orb.LineString {
	ls, err := shapespace.ToPath(s.Path)
	if err != nil {
		return nil
	}

	return ls
}
