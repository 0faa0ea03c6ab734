package mock

import "github.com/mapwiki/wikiextract"

var _ wikiextract.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikiextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
