package wikiextract

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title is a normalized, language-qualified Wikipedia article title. The
// normalization is the linchpin that lets heterogeneous inputs be compared by
// set membership: the same logical article produces an equal Title whether it
// came from a dump record, a url list, or an OSM tag row.
//
// Comparable forms:
//   - plain titles: "Spatial Database" (plus a language code)
//   - urls: "https://en.wikipedia.org/wiki/Spatial_database#Geodatabase"
//   - OSM-style tags: "en:Spatial Database"
//
// MediaWiki titles are case-insensitive in the first letter only, so the
// first letter is upper-cased and the remaining case is preserved.
type Title struct {
	Lang string
	Name string
}

// NewTitle normalizes a plain article title in the given language.
func NewTitle(title, lang string) (Title, error) {
	title = strings.TrimSpace(title)
	lang = strings.TrimSpace(lang)
	if title == "" {
		return Title{}, Errorf(EINVALID, "title cannot be empty or whitespace")
	}
	if lang == "" {
		return Title{}, Errorf(EINVALID, "lang cannot be empty or whitespace")
	}
	return Title{Lang: lang, Name: normalizeTitle(title)}, nil
}

// ParseTitleFromURL normalizes a full article URL, e.g.
// "https://en.m.wikipedia.org/wiki/Article_Title#Section". The language is
// derived from the subdomain; the "m." mobile infix and the fragment are
// ignored.
func ParseTitleFromURL(raw string) (Title, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Title{}, Errorf(EINVALID, "cannot parse url %q: %v", raw, err)
	}
	host := u.Hostname()
	if host == "" {
		return Title{}, Errorf(EINVALID, "no host in url %q", raw)
	}
	lang, domain, ok := strings.Cut(host, ".")
	if !ok {
		return Title{}, Errorf(EINVALID, "no subdomain in url %q", raw)
	}
	domain = strings.TrimPrefix(domain, "m.")
	if domain != "wikipedia.org" {
		return Title{}, Errorf(EINVALID, "url %q base domain is not wikipedia.org", raw)
	}

	// Split on the first '/' only: article titles may contain slashes
	// (e.g. "Breil/Brigels"), which belong to the title.
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	root, title, ok := strings.Cut(path, "/")
	if !ok {
		return Title{}, Errorf(EINVALID, "url %q path has less than 2 segments", raw)
	}
	if root != "wiki" {
		return Title{}, Errorf(EINVALID, "url %q base path is not /wiki/", raw)
	}
	decoded, err := url.PathUnescape(title)
	if err != nil {
		return Title{}, Errorf(EINVALID, "cannot decode url %q: %v", raw, err)
	}
	return NewTitle(decoded, lang)
}

// ParseTitleFromOSMTag normalizes an OSM wikipedia tag value. The documented
// form is "lang:Article Title", but tag values in the wild are frequently
// full urls, or even "lang:https://..." with a bogus prefix.
func ParseTitleFromOSMTag(tag string) (Title, error) {
	tag = strings.TrimSpace(tag)
	lang, title, ok := strings.Cut(tag, ":")
	if !ok {
		return Title{}, Errorf(EINVALID, "no ':' separating lang and title in %q", tag)
	}
	lang = strings.TrimSpace(lang)
	title = strings.TrimSpace(title)

	if lang == "http" || lang == "https" {
		return ParseTitleFromURL(tag)
	}
	if strings.HasPrefix(title, "http://") || strings.HasPrefix(title, "https://") {
		return ParseTitleFromURL(title)
	}
	return NewTitle(title, lang)
}

// String renders the OSM tag form, e.g. "en:Spatial_database".
func (t Title) String() string {
	return t.Lang + ":" + t.Name
}

func normalizeTitle(title string) string {
	s := strings.ReplaceAll(title, " ", "_")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
