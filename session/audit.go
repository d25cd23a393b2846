// SPDX-License-Identifier: MIT

package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Audit record kinds.
const (
	KindStarting       = "starting"
	KindRestarting     = "restarting"
	KindDemonstration  = "demonstration"
	KindGeneratedModel = "generated-model"
)

// DefaultAuditFile is the file name used when OpenAuditLog gets a directory.
const DefaultAuditFile = "shapes.log"

// OpenAuditLog opens path for appending (a directory means
// <path>/shapes.log) and returns a JSON logger over it. The caller closes the
// returned Closer when the session ends.
func OpenAuditLog(path string) (*slog.Logger, io.Closer, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultAuditFile)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(h), f, nil
}

// audit writes one learning-event record.
func (s *Session) audit(kind, glyph string, position int, params, path []float64) {
	s.opts.audit.Info("learning event",
		slog.String("session", s.id.String()),
		slog.String("kind", kind),
		slog.String("glyph", glyph),
		slog.Int("position", position),
		slog.Any("params", params),
		slog.Any("path", path))
}
