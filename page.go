package wikiextract

import "context"

// Page is one decoded record of a Wikipedia Enterprise HTML dump. Only the
// fields the pipeline reads are declared; everything else in the (large)
// schema is ignored during decoding.
//
// For all available fields, see https://enterprise.wikimedia.com/docs/data-dictionary/
type Page struct {
	Name         string      `json:"name"`
	DateModified string      `json:"date_modified"`
	InLanguage   Language    `json:"in_language"`
	URL          string      `json:"url"`
	MainEntity   *Entity     `json:"main_entity"`
	ArticleBody  ArticleBody `json:"article_body"`
	Redirects    []Redirect  `json:"redirects"`
}

// Language identifies the wiki edition a page belongs to.
type Language struct {
	Identifier string `json:"identifier"`
}

// Entity is a linked Wikidata item.
type Entity struct {
	Identifier string `json:"identifier"`
}

// ArticleBody holds the rendered article markup.
type ArticleBody struct {
	HTML string `json:"html"`
}

// Redirect is an alternate title that resolves to the page.
type Redirect struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Lang returns the page's language code.
func (p *Page) Lang() string {
	return p.InLanguage.Identifier
}

// QID returns the page's Wikidata identifier. It returns ENOTFOUND when the
// dump asserts no main entity and EINVALID when the asserted identifier is
// malformed.
func (p *Page) QID() (QID, error) {
	if p.MainEntity == nil {
		return 0, Errorf(ENOTFOUND, "page %q has no wikidata entity", p.Name)
	}
	return ParseQID(p.MainEntity.Identifier)
}

// Title returns the page's own normalized title.
func (p *Page) Title() (Title, error) {
	return NewTitle(p.Name, p.Lang())
}

// ArticleRef is the resolved identity an output artifact is addressed by:
// the QID when the dump asserts one, otherwise a language-qualified title.
// Artifacts are additionally keyed by language so that two language editions
// of the same entity never overwrite each other.
type ArticleRef struct {
	QID   *QID
	Title *Title
	Lang  string
}

// Validate returns an error if the reference cannot address an artifact.
func (r ArticleRef) Validate() error {
	if r.QID == nil && r.Title == nil {
		return Errorf(EINVALID, "article reference requires a qid or a title")
	}
	if r.Lang == "" {
		return Errorf(EINVALID, "article reference requires a language")
	}
	return nil
}

// Simplifier reduces article HTML to its relevant content. Implementations
// must be deterministic and idempotent: re-simplifying already simplified
// output is a no-op.
type Simplifier interface {
	Simplify(html, lang string) (string, error)
}

// Converter converts simplified HTML to an alternate output format
// (e.g. Markdown).
type Converter interface {
	Convert(html string) (string, error)
}

// ArticleStore persists simplified articles keyed by resolved identity.
// Writes must be atomic: a killed process never leaves a truncated artifact,
// and re-running over the same dump converges instead of duplicating.
type ArticleStore interface {
	WriteArticle(ctx context.Context, ref ArticleRef, content []byte) error
}

// DiscoveryLog propagates newly learned identifiers to sibling processes and
// later pipeline phases. Appends from concurrent processes sharing one path
// must interleave only on line boundaries; duplicate entries are legal and
// are deduplicated when the log is re-read as a filter source.
type DiscoveryLog interface {
	Append(qid QID) error
}
