// Package extract provides the dump extraction pipeline. It streams
// newline-delimited Wikipedia Enterprise dump records, keeps the articles an
// identifier filter selects, simplifies and converts their HTML, and writes
// the results to an article store, optionally recording newly learned
// Wikidata identifiers in a shared discovery log.
package extract

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/mapwiki/wikiextract"
	"golang.org/x/time/rate"
)

// maxRecordBytes bounds a single dump line. Enterprise dump records carry
// the full article HTML inline and routinely run to tens of megabytes.
const maxRecordBytes = 128 << 20

// Pipeline processes one dump stream. Bad records are counted and logged
// but never abort the run; only stream-level failures do.
type Pipeline struct {
	Filters     *wikiextract.FilterSet
	Simplifier  wikiextract.Simplifier
	Converter   wikiextract.Converter // nil keeps HTML output
	Store       wikiextract.ArticleStore
	Discovery   wikiextract.DiscoveryLog // nil disables discovery
	Logger      *slog.Logger
	NoSimplify  bool
	Passthrough io.Writer // nil disables; receives matched raw records
}

// Result tallies the outcome of one dump pass.
type Result struct {
	Lines           int
	Matched         int
	Written         int
	NewQIDs         int
	RecordErrors    int
	WriteErrors     int
	DiscoveryErrors int
}

// Run consumes dump records from r until EOF or context cancellation.
func (p *Pipeline) Run(ctx context.Context, r io.Reader) (*Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Bad records cluster, so throttle the warnings: log the first few in
	// full, then one per interval with the running count.
	throttle := rate.Sometimes{First: 10, Interval: 10 * time.Second}
	res := &Result{}
	warn := func(msg string, args ...any) {
		throttle.Do(func() {
			logger.Warn(msg, append(args, slog.Int("record_errors", res.RecordErrors))...)
		})
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), maxRecordBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Lines++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var page wikiextract.Page
		if err := json.Unmarshal(line, &page); err != nil {
			res.RecordErrors++
			warn("skipping undecodable record", slog.Int("line", res.Lines), slog.Any("error", err))
			continue
		}

		if err := p.process(ctx, &page, line, res, warn); err != nil {
			return res, err
		}
	}
	if err := scanner.Err(); err != nil {
		return res, wikiextract.Errorf(wikiextract.EINTERNAL, "reading dump: %v", err)
	}
	return res, nil
}

// process handles one decoded record. It returns an error only for failures
// that must abort the whole run.
func (p *Pipeline) process(ctx context.Context, page *wikiextract.Page, raw []byte, res *Result, warn func(string, ...any)) error {
	qid := pageQID(page, res, warn)
	titles := pageTitles(page)

	matched := p.Filters.MatchingTitles(titles)
	qidMatch := qid != nil && p.Filters.ContainsQID(*qid)
	if !qidMatch && len(matched) == 0 {
		return nil
	}
	res.Matched++

	if p.Passthrough != nil {
		// Two writes: appending to raw could scribble on the scanner's
		// internal buffer.
		if _, err := p.Passthrough.Write(raw); err != nil {
			return wikiextract.Errorf(wikiextract.EINTERNAL, "writing passthrough record: %v", err)
		}
		if _, err := p.Passthrough.Write([]byte{'\n'}); err != nil {
			return wikiextract.Errorf(wikiextract.EINTERNAL, "writing passthrough record: %v", err)
		}
	}

	// A title match with an unseeded QID means map data referenced the
	// article by URL while other language editions will reference it by
	// the entity. Publish the QID so they get picked up too. Propagation
	// is best-effort: a failed append just means nobody learns this
	// identifier until a later run rediscovers it, so the stream goes on.
	if p.Discovery != nil && qid != nil && !qidMatch && len(matched) > 0 {
		if err := p.Discovery.Append(*qid); err != nil {
			res.DiscoveryErrors++
			warn("failed to record discovered identifier", slog.String("qid", qid.String()), slog.Any("error", err))
		} else {
			res.NewQIDs++
		}
	}

	content := page.ArticleBody.HTML
	if !p.NoSimplify {
		simplified, err := p.Simplifier.Simplify(content, page.Lang())
		if err != nil {
			res.RecordErrors++
			warn("skipping unsimplifiable article", slog.String("page", page.Name), slog.Any("error", err))
			return nil
		}
		content = simplified
	}
	if p.Converter != nil {
		converted, err := p.Converter.Convert(content)
		if err != nil {
			res.RecordErrors++
			warn("skipping unconvertible article", slog.String("page", page.Name), slog.Any("error", err))
			return nil
		}
		content = converted
	}

	ref := wikiextract.ArticleRef{QID: qid, Lang: page.Lang()}
	if title := refTitle(page, matched); title != nil {
		ref.Title = title
	}

	if err := p.Store.WriteArticle(ctx, ref, []byte(content)); err != nil {
		res.WriteErrors++
		warn("failed to write article", slog.String("page", page.Name), slog.Any("error", err))
		return nil
	}
	res.Written++
	return nil
}

// pageQID resolves the record's Wikidata identifier. A missing entity is
// normal; a malformed one counts as a record error. Both yield nil.
func pageQID(page *wikiextract.Page, res *Result, warn func(string, ...any)) *wikiextract.QID {
	qid, err := page.QID()
	if err != nil {
		if wikiextract.ErrorCode(err) == wikiextract.EINVALID {
			res.RecordErrors++
			warn("record has malformed wikidata identifier", slog.String("page", page.Name), slog.Any("error", err))
		}
		return nil
	}
	return &qid
}

// pageTitles collects the record's own title plus redirect titles, all in
// the record's language. Unusable names are dropped.
func pageTitles(page *wikiextract.Page) []wikiextract.Title {
	titles := make([]wikiextract.Title, 0, 1+len(page.Redirects))
	if own, err := page.Title(); err == nil {
		titles = append(titles, own)
	}
	for _, r := range page.Redirects {
		if t, err := wikiextract.NewTitle(r.Name, page.Lang()); err == nil {
			titles = append(titles, t)
		}
	}
	return titles
}

// refTitle picks the title an artifact is keyed by when it has no QID: the
// first filter-matched title, so the output path matches what the map data
// actually references, falling back to the record's own title.
func refTitle(page *wikiextract.Page, matched []wikiextract.Title) *wikiextract.Title {
	if len(matched) > 0 {
		return &matched[0]
	}
	if own, err := page.Title(); err == nil {
		return &own
	}
	return nil
}
