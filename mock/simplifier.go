// Package mock provides hand-written mocks of the domain interfaces.
package mock

import "github.com/mapwiki/wikiextract"

var _ wikiextract.Simplifier = (*Simplifier)(nil)

// Simplifier is a mock implementation of wikiextract.Simplifier.
type Simplifier struct {
	SimplifyFn func(html, lang string) (string, error)
}

func (s *Simplifier) Simplify(html, lang string) (string, error) {
	return s.SimplifyFn(html, lang)
}
