package fs

import (
	"bufio"
	"os"
	"sync"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/bloom"
)

// Ensure DiscoveryLog implements wikiextract.DiscoveryLog at compile time.
var _ wikiextract.DiscoveryLog = (*DiscoveryLog)(nil)

// DiscoveryLog appends newly discovered Wikidata identifiers to a shared
// file. The file is opened in append mode and every append is a single
// short write, so concurrent processes can share one log without locking:
// appends interleave but never tear. Duplicate lines are legal and are
// collapsed when the log is read back.
type DiscoveryLog struct {
	mu   sync.Mutex
	file *os.File
	seen *bloom.Filter
}

// OpenDiscoveryLog opens or creates the log at path for appending. A Bloom
// filter suppresses most repeat appends from this process; other processes
// appending to the same file stay invisible and may duplicate entries,
// which is fine.
func OpenDiscoveryLog(path string) (*DiscoveryLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "opening discovery log: %v", err)
	}
	return &DiscoveryLog{
		file: f,
		seen: bloom.NewDiscoveryFilter(),
	}, nil
}

// Append records qid in the log. Repeat appends of the same identifier are
// usually skipped, but suppression is best-effort only.
func (l *DiscoveryLog) Append(qid wikiextract.QID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seen.TestOrAdd(qid.String()) {
		return nil
	}
	if _, err := l.file.Write([]byte(qid.String() + "\n")); err != nil {
		return wikiextract.Errorf(wikiextract.EINTERNAL, "appending to discovery log: %v", err)
	}
	return nil
}

// Close closes the underlying file.
func (l *DiscoveryLog) Close() error {
	return l.file.Close()
}

// ReadDiscoveryLog returns the distinct identifiers recorded at path, in
// first-appearance order. Blank lines are skipped; a malformed line is an
// error since only this program writes the file.
func ReadDiscoveryLog(path string) ([]wikiextract.QID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "opening discovery log: %v", err)
	}
	defer f.Close()

	var qids []wikiextract.QID
	seen := make(map[wikiextract.QID]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		qid, err := wikiextract.ParseQID(line)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[qid]; ok {
			continue
		}
		seen[qid] = struct{}{}
		qids = append(qids, qid)
	}
	if err := scanner.Err(); err != nil {
		return nil, wikiextract.Errorf(wikiextract.EINTERNAL, "reading discovery log: %v", err)
	}
	return qids, nil
}
