package wikiextract

import (
	"strconv"
	"strings"
)

// QID is a Wikidata item identifier (Q number). It is language-agnostic:
// every language edition of an article about the same real-world entity
// shares one QID.
//
// See https://www.wikidata.org/wiki/Wikidata:Glossary#QID
type QID uint64

// ParseQID normalizes a raw identifier into a QID. It accepts surrounding
// whitespace and an optional Q/q prefix ("Q12345", "q12345", " 12345 ").
// Anything else returns an EINVALID error; malformed input is never coerced.
func ParseQID(raw string) (QID, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 0 && (s[0] == 'Q' || s[0] == 'q') {
		s = s[1:]
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, Errorf(EINVALID, "malformed wikidata identifier %q", raw)
	}
	return QID(n), nil
}

// String renders the canonical form, e.g. "Q12345".
func (q QID) String() string {
	return "Q" + strconv.FormatUint(uint64(q), 10)
}
