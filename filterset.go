package wikiextract

// FilterSet is the union of the identifier and title lookup sets built from
// the configured filter sources. Membership is a pure function of a record's
// derived keys; the matcher never needs to know which source produced a key.
type FilterSet struct {
	qids   map[QID]struct{}
	titles map[Title]struct{}
}

// NewFilterSet returns an empty FilterSet.
func NewFilterSet() *FilterSet {
	return &FilterSet{
		qids:   make(map[QID]struct{}),
		titles: make(map[Title]struct{}),
	}
}

// AddQID inserts an identifier key.
func (s *FilterSet) AddQID(q QID) {
	s.qids[q] = struct{}{}
}

// AddTitle inserts a title key.
func (s *FilterSet) AddTitle(t Title) {
	s.titles[t] = struct{}{}
}

// ContainsQID reports whether the identifier set holds q.
func (s *FilterSet) ContainsQID(q QID) bool {
	_, ok := s.qids[q]
	return ok
}

// ContainsTitle reports whether the title set holds t.
func (s *FilterSet) ContainsTitle(t Title) bool {
	_, ok := s.titles[t]
	return ok
}

// MatchingTitles returns the subset of titles present in the title set,
// preserving order.
func (s *FilterSet) MatchingTitles(titles []Title) []Title {
	if len(s.titles) == 0 {
		return nil
	}
	var matched []Title
	for _, t := range titles {
		if s.ContainsTitle(t) {
			matched = append(matched, t)
		}
	}
	return matched
}

// Matches reports whether any derived key is present in any set: a logical
// OR across all filter sources.
func (s *FilterSet) Matches(qid *QID, titles []Title) bool {
	if qid != nil && s.ContainsQID(*qid) {
		return true
	}
	return len(s.MatchingTitles(titles)) > 0
}

// QIDCount returns the number of identifier keys.
func (s *FilterSet) QIDCount() int { return len(s.qids) }

// TitleCount returns the number of title keys.
func (s *FilterSet) TitleCount() int { return len(s.titles) }

// Empty reports whether the set holds no keys at all.
func (s *FilterSet) Empty() bool {
	return len(s.qids) == 0 && len(s.titles) == 0
}
