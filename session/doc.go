// SPDX-License-Identifier: MIT

// Package session keeps the learners of several glyphs coherent across
// collections.
//
// A Session owns one learner.Learner per glyph type, created the first time
// the glyph appears in a collection and reused for every later appearance, so
// bounds and attempt history carry over (for example the letters of a word,
// then the letters of the next word). Events from an interactive front end
// are routed by position in the current collection.
//
// Unknown positions and an exhausted cursor are soft failures: the call
// returns an error matching ErrUnknownReference or ErrCursorExhausted, logs a
// warning and leaves the session unchanged.
//
// Every learning event (starting, restarting, demonstration, generated-model)
// is written as one structured record to the audit logger; OpenAuditLog
// creates a JSON one over a file.
package session
