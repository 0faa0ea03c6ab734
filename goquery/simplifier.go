// Package goquery implements the HTML simplification engine.
//
// The goal is to process Wikipedia Enterprise HTML into output similar to
// the TextExtracts API: images, media, tables, and wrapper elements like
// divs and sections are removed; doctype, comments, html, head, and body are
// removed; only headers, paragraphs, and basic text formatting remain.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mapwiki/wikiextract"
	"golang.org/x/net/html"
)

const (
	headerSelector   = "h1, h2, h3, h4, h5, h6"
	redirectSelector = `link[rel="mw:PageProp/redirect"]`

	// Elements kept even when a deny rule matches them: excerpt blocks
	// hold content transcluded from other articles.
	allowSelector = "div.excerpt-block, div.excerpt"
)

// denySelector lists elements that never carry reader-relevant content.
// Derived from the TextExtracts extension config, plus media elements, the
// pronunciation "listen" button, and the coordinates transclusion.
var denySelector = strings.Join([]string{
	"table",
	"div",
	"figure",
	"script",
	"input",
	"style",
	"ul.gallery",
	".mw-editsection",
	"sup.reference",
	"ol.references",
	".error",
	".nomobile",
	".noprint",
	".noexcerpt",
	".sortkey",
	"img",
	"audio",
	"video",
	"embed",
	`span[typeof="mw:Transclusion"][data-mw*='"audio":']`,
	"span#coordinates",
	"head",
}, ", ")

// Ensure Simplifier implements wikiextract.Simplifier at compile time.
var _ wikiextract.Simplifier = (*Simplifier)(nil)

// Simplifier reduces article HTML using per-language section-removal rules.
// The rule set is fixed at construction and safe for concurrent use.
type Simplifier struct {
	sections map[string][]string
}

// NewSimplifier creates a Simplifier applying the rules in cfg.
func NewSimplifier(cfg *wikiextract.Config) *Simplifier {
	return &Simplifier{sections: cfg.SectionsToRemove}
}

// Simplify reduces an article to its relevant content. A language without
// configured rules gets the generic cleanup only. Simplify is idempotent and
// tolerates malformed fragments; redirect stubs and articles left with no
// text are reported as EINVALID errors so the caller can skip the record.
func (s *Simplifier) Simplify(rawHTML, lang string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", wikiextract.Errorf(wikiextract.EINVALID, "parsing article html: %v", err)
	}

	if target, ok := detectRedirect(doc); ok {
		return "", wikiextract.Errorf(wikiextract.EINVALID, "page is a redirect stub for %q", target)
	}

	if titles := s.sections[lang]; len(titles) > 0 {
		removeSections(doc, titles)
	}
	removeDenied(doc)
	removeEmptySections(doc)
	expandEmpty(doc)
	removeNonElementNodes(doc)
	removeAttrs(doc)
	finalExpansions(doc)

	root := doc.Get(0)
	removeTopLevelWhitespace(root)

	if !hasText(root) {
		return "", wikiextract.Errorf(wikiextract.EINVALID, "page has no text after simplification")
	}
	return render(root)
}

// detectRedirect finds the target title if the article is a redirect stub.
func detectRedirect(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find(redirectSelector).Attr("href")
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(strings.TrimSpace(href), "./"), true
}

// DetectLang attempts to find the wikipedia language of a raw article from
// its base url.
func DetectLang(rawHTML string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", false
	}
	href, ok := doc.Find("head > base").Attr("href")
	if !ok {
		return "", false
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	lang, _, ok := strings.Cut(u.Hostname(), ".")
	if !ok || lang == "" {
		return "", false
	}
	return lang, true
}

// removeSections removes headers whose first text node equals a configured
// title, together with all following siblings up to the next header of
// greater or equal level. Titles are matched by case-sensitive comparison
// and must be in Unicode NFC, matching Wikipedia's internal normalization.
func removeSections(doc *goquery.Document, titles []string) {
	for _, title := range titles {
		var doomed []*html.Node
		doc.Find(headerSelector).Each(func(_ int, sel *goquery.Selection) {
			header := sel.Get(0)
			if firstText(header) != title {
				return
			}
			doomed = append(doomed, header)
			for sib := header.NextSibling; sib != nil; sib = sib.NextSibling {
				if isHeader(sib) && sib.Data <= header.Data {
					break
				}
				doomed = append(doomed, sib)
			}
		})
		for _, n := range doomed {
			removeNode(n)
		}
	}
}

func removeDenied(doc *goquery.Document) {
	doc.Find(denySelector).Not(allowSelector).Each(func(_ int, sel *goquery.Selection) {
		removeNode(sel.Get(0))
	})
}

// removeEmptySections drops section elements whose header has no sibling
// content besides other headers and whitespace.
func removeEmptySections(doc *goquery.Document) {
	var doomed []*html.Node
	doc.Find(headerSelector).Each(func(_ int, sel *goquery.Selection) {
		header := sel.Get(0)
		parent := header.Parent
		if parent == nil || parent.Type != html.ElementNode || parent.Data != "section" {
			return
		}
		for sib := parent.FirstChild; sib != nil; sib = sib.NextSibling {
			if sib == header || sib.Type != html.ElementNode {
				continue
			}
			if !isHeader(sib) && hasText(sib) {
				return
			}
		}
		doomed = append(doomed, parent)
	})
	for _, n := range doomed {
		removeNode(n)
	}
}

// expandEmpty unwraps elements that contain no text or only whitespace,
// leaving their contents in place.
func expandEmpty(doc *goquery.Document) {
	var doomed []*html.Node
	walkElements(doc.Get(0), func(n *html.Node) {
		if !hasText(n) {
			doomed = append(doomed, n)
		}
	})
	for _, n := range doomed {
		unwrapNode(n)
	}
}

func removeNonElementNodes(doc *goquery.Document) {
	var doomed []*html.Node
	walkNodes(doc.Get(0), func(n *html.Node) {
		if n.Type == html.CommentNode || n.Type == html.DoctypeNode {
			doomed = append(doomed, n)
		}
	})
	for _, n := range doomed {
		removeNode(n)
	}
}

// removeAttrs strips presentation and MediaWiki bookkeeping attributes.
func removeAttrs(doc *goquery.Document) {
	walkElements(doc.Get(0), func(n *html.Node) {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			if n.Data == "span" && (a.Key == "style" || a.Key == "class") {
				continue
			}
			if strings.HasPrefix(a.Key, "data-mw") {
				continue
			}
			switch a.Key {
			case "id", "prefix", "typeof", "about", "rel":
				continue
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	})
}

// finalExpansions unwraps the remaining wrapper elements: links, sections,
// divs, attribute-less spans, and the html/body scaffolding the parser adds.
func finalExpansions(doc *goquery.Document) {
	var doomed []*html.Node
	walkElements(doc.Get(0), func(n *html.Node) {
		switch n.Data {
		case "a", "section", "div", "body", "html":
			doomed = append(doomed, n)
		case "span":
			if len(n.Attr) == 0 {
				doomed = append(doomed, n)
			}
		}
	})
	for _, n := range doomed {
		unwrapNode(n)
	}
}

func removeTopLevelWhitespace(root *html.Node) {
	var doomed []*html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			doomed = append(doomed, c)
		}
	}
	for _, n := range doomed {
		removeNode(n)
	}
}

func render(root *html.Node) (string, error) {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", wikiextract.Errorf(wikiextract.EINTERNAL, "rendering simplified html: %v", err)
		}
	}
	return b.String(), nil
}

// firstText returns the first text node in document order beneath n.
func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data
		}
		if t := firstText(c); t != "" {
			return t
		}
	}
	return ""
}

func isHeader(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// hasText reports whether n's subtree contains any non-whitespace text.
func hasText(n *html.Node) bool {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data) != ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if hasText(c) {
			return true
		}
	}
	return false
}

func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

func walkNodes(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, fn)
	}
}

func removeNode(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// unwrapNode removes n, re-parenting its children in its place.
func unwrapNode(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}
