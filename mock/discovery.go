package mock

import "github.com/mapwiki/wikiextract"

var _ wikiextract.DiscoveryLog = (*DiscoveryLog)(nil)

// DiscoveryLog is a mock implementation of wikiextract.DiscoveryLog.
type DiscoveryLog struct {
	AppendFn func(qid wikiextract.QID) error
}

func (l *DiscoveryLog) Append(qid wikiextract.QID) error {
	return l.AppendFn(qid)
}
