package htmltomarkdown_test

import (
	"testing"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements wikiextract.Converter at compile time.
var _ wikiextract.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<p>Zürich is the largest city in Switzerland.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Zürich is the largest city in Switzerland.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Zürich</h1><h2>History</h2><h3>Roman era</h3>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Zürich")
		assert.Contains(t, md, "## History")
		assert.Contains(t, md, "### Roman era")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		html := `<p>See <a href="https://en.wikipedia.org/wiki/Limmat">Limmat</a> for the river.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "[Limmat](https://en.wikipedia.org/wiki/Limmat)")
	})

	t.Run("converts unordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li>First</li><li>Second</li><li>Third</li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
		assert.Contains(t, md, "- Third")
	})

	t.Run("converts ordered lists", func(t *testing.T) {
		t.Parallel()

		html := `<ol><li>First</li><li>Second</li><li>Third</li></ol>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "1. First")
		assert.Contains(t, md, "2. Second")
		assert.Contains(t, md, "3. Third")
	})

	t.Run("converts bold and italic", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Bold</strong> and <em>italic</em> text.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Bold**")
		assert.Contains(t, md, "*italic*")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		html := `<blockquote><p>This is a quote.</p></blockquote>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "> This is a quote.")
	})

	t.Run("converts infobox tables from unsimplified articles", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Canton</th><th>Population</th></tr></thead>
<tbody><tr><td>Zürich</td><td>1553423</td></tr><tr><td>Bern</td><td>1043132</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Canton")
		assert.Contains(t, md, "Population")
		assert.Contains(t, md, "Zürich")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("normalizes artifact whitespace", func(t *testing.T) {
		t.Parallel()

		html := "\n\n  <p>Bellinzona is the capital of Ticino.</p>\n\n"

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "Bellinzona is the capital of Ticino.\n", md)
	})

	t.Run("returns error when conversion yields no text", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert(`<div><span></span></div>`)

		require.Error(t, err)
		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("")

		require.Error(t, err)
		assert.Equal(t, wikiextract.EINVALID, wikiextract.ErrorCode(err))
	})

	t.Run("handles simplified article output", func(t *testing.T) {
		t.Parallel()

		// Simplified articles are flat header/paragraph fragments with
		// wrapper elements and links already stripped.
		html := `<p><b>Zürich</b> is the largest city in Switzerland.</p>` +
			`<h2>Geography</h2>` +
			`<p>The city sits at the northern tip of Lake Zürich.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Zürich**")
		assert.Contains(t, md, "## Geography")
		assert.Contains(t, md, "northern tip of Lake Zürich")
	})
}
