package extract

import (
	"context"
	"io"
	"log/slog"

	"github.com/mapwiki/wikiextract"
	"golang.org/x/sync/errgroup"
)

// TwoPhase runs the full extraction protocol over a set of dumps. Phase one
// processes every dump concurrently with the same seed filters, all sharing
// one discovery log. After every dump finishes, the log is re-read and the
// dumps are processed again seeded only with the discovered identifiers, so
// an article referenced by URL in one language is extracted in all of them.
type TwoPhase struct {
	Seed       *wikiextract.FilterSet
	Simplifier wikiextract.Simplifier
	Converter  wikiextract.Converter
	Store      wikiextract.ArticleStore
	Logger     *slog.Logger
	NoSimplify bool

	// Discovery is the shared log phase one appends to.
	Discovery wikiextract.DiscoveryLog
	// ReadDiscovered re-reads the log at the phase barrier. It sees
	// appends from concurrent sibling processes too, not just ours.
	ReadDiscovered func() ([]wikiextract.QID, error)
	// OpenDump opens one dump stream by path. It is called once per dump
	// per phase, so each phase reads the dump from the start.
	OpenDump func(path string) (io.ReadCloser, error)
}

// Run executes both phases and returns the combined tally.
func (t *TwoPhase) Run(ctx context.Context, dumps []string) (*Result, error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("starting extraction phase", slog.Int("phase", 1), slog.Int("dumps", len(dumps)))
	total, err := t.phase(ctx, dumps, t.Seed, t.Discovery)
	if err != nil {
		return total, err
	}

	qids, err := t.ReadDiscovered()
	if err != nil {
		return total, err
	}
	// Keep only identifiers the seed didn't already cover: those articles
	// were extracted in phase one.
	discovered := wikiextract.NewFilterSet()
	for _, qid := range qids {
		if !t.Seed.ContainsQID(qid) {
			discovered.AddQID(qid)
		}
	}
	if discovered.Empty() {
		logger.Info("no new identifiers discovered, skipping phase", slog.Int("phase", 2))
		return total, nil
	}

	logger.Info("starting extraction phase",
		slog.Int("phase", 2),
		slog.Int("dumps", len(dumps)),
		slog.Int("discovered_qids", discovered.QIDCount()))
	second, err := t.phase(ctx, dumps, discovered, nil)
	total.add(second)
	return total, err
}

// phase runs every dump through its own pipeline concurrently and waits for
// all of them. A plain errgroup.Group, deliberately not WithContext: one
// dump failing must not cancel its siblings, or their discoveries would be
// lost at the barrier.
func (t *TwoPhase) phase(ctx context.Context, dumps []string, filters *wikiextract.FilterSet, discovery wikiextract.DiscoveryLog) (*Result, error) {
	results := make([]*Result, len(dumps))
	var g errgroup.Group
	for i, path := range dumps {
		g.Go(func() error {
			r, err := t.OpenDump(path)
			if err != nil {
				return err
			}
			defer r.Close()

			p := &Pipeline{
				Filters:    filters,
				Simplifier: t.Simplifier,
				Converter:  t.Converter,
				Store:      t.Store,
				Discovery:  discovery,
				Logger:     t.Logger,
				NoSimplify: t.NoSimplify,
			}
			res, err := p.Run(ctx, r)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	total := &Result{}
	for _, res := range results {
		total.add(res)
	}
	return total, err
}

func (r *Result) add(other *Result) {
	if other == nil {
		return
	}
	r.Lines += other.Lines
	r.Matched += other.Matched
	r.Written += other.Written
	r.NewQIDs += other.NewQIDs
	r.RecordErrors += other.RecordErrors
	r.WriteErrors += other.WriteErrors
	r.DiscoveryErrors += other.DiscoveryErrors
}
