// SPDX-License-Identifier: MIT

package session

import "errors"

var (
	// ErrUnknownReference reports a position outside the current collection.
	ErrUnknownReference = errors.New("session: unknown reference")

	// ErrCursorExhausted reports StartNext past the end of the collection.
	ErrCursorExhausted = errors.New("session: no glyph left to start")

	// ErrEmptyCollection reports NewCollection without glyphs.
	ErrEmptyCollection = errors.New("session: empty collection")
)
