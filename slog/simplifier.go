// Package slog provides logging decorators for the domain interfaces.
package slog

import (
	"log/slog"
	"time"

	"github.com/mapwiki/wikiextract"
)

// Ensure LoggingSimplifier implements wikiextract.Simplifier.
var _ wikiextract.Simplifier = (*LoggingSimplifier)(nil)

// LoggingSimplifier wraps a Simplifier with debug logging for size reduction
// and timing, which is the first thing to look at when extraction is slow.
type LoggingSimplifier struct {
	next   wikiextract.Simplifier
	logger *slog.Logger
}

// NewLoggingSimplifier creates a new LoggingSimplifier.
func NewLoggingSimplifier(next wikiextract.Simplifier, logger *slog.Logger) *LoggingSimplifier {
	return &LoggingSimplifier{next: next, logger: logger}
}

// Simplify delegates to the wrapped simplifier and logs the outcome.
func (s *LoggingSimplifier) Simplify(html, lang string) (string, error) {
	begin := time.Now()
	out, err := s.next.Simplify(html, lang)
	if err != nil {
		s.logger.Debug("simplification failed",
			"lang", lang,
			"input_bytes", len(html),
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	s.logger.Debug("simplified article",
		"lang", lang,
		"input_bytes", len(html),
		"output_bytes", len(out),
		"duration", time.Since(begin),
	)
	return out, nil
}
