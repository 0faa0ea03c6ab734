// Package htmltomarkdown converts article HTML into Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/mapwiki/wikiextract"
)

// Ensure Converter implements wikiextract.Converter at compile time.
var _ wikiextract.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert article HTML to Markdown.
// The table plugin matters for unsimplified articles, which keep infoboxes
// and data tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms article HTML into Markdown. The result is normalized
// for storage as an artifact: no leading or trailing blank lines, exactly
// one final newline, so re-runs stay byte-identical regardless of how the
// renderer pads its output.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", wikiextract.Errorf(wikiextract.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	result = strings.TrimSpace(result)
	if result == "" {
		return "", wikiextract.Errorf(wikiextract.EINVALID, "article converted to empty markdown")
	}

	return result + "\n", nil
}
