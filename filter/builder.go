// Package filter builds the unified lookup sets that decide which dump
// records are wanted. Up to three heterogeneous sources (a QID list, a url
// list, and an OSM tag table) are normalized into one FilterSet; the
// discovery log written by a previous phase is re-read through the same QID
// loader, which deduplicates it by construction.
package filter

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mapwiki/wikiextract"
)

// Builder accumulates filter sources into a FilterSet. Malformed lines are
// logged and skipped, never abort a load: multi-gigabyte tag files contain
// noise. Build fails when no source was configured at all.
type Builder struct {
	set     *wikiextract.FilterSet
	logger  *slog.Logger
	sources int
	skipped int
}

// NewBuilder returns an empty Builder logging skipped entries to logger.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{set: wikiextract.NewFilterSet(), logger: logger}
}

// AddQIDFile loads a file with one Wikidata identifier per line. The
// discovery log uses the same format.
func (b *Builder) AddQIDFile(path string) error {
	return b.addFile(path, b.AddQIDs)
}

// AddQIDs loads identifiers, one per line, from r.
func (b *Builder) AddQIDs(r io.Reader) error {
	if err := b.scanLines(r, "qid", func(line string) error {
		qid, err := wikiextract.ParseQID(line)
		if err != nil {
			return err
		}
		b.set.AddQID(qid)
		return nil
	}); err != nil {
		return err
	}
	b.sources++
	return nil
}

// AddURLFile loads a file with one Wikipedia article url per line.
func (b *Builder) AddURLFile(path string) error {
	return b.addFile(path, b.AddURLs)
}

// AddURLs loads article urls, one per line, from r. Lines in the OSM tag
// form ("lang:Title") are accepted too.
func (b *Builder) AddURLs(r io.Reader) error {
	if err := b.scanLines(r, "url", func(line string) error {
		title, err := wikiextract.ParseTitleFromOSMTag(line)
		if err != nil {
			return err
		}
		b.set.AddTitle(title)
		return nil
	}); err != nil {
		return err
	}
	b.sources++
	return nil
}

// AddOSMTagsFile loads a TSV file of OSM tags with a header row.
func (b *Builder) AddOSMTagsFile(path string) error {
	return b.addFile(path, b.AddOSMTags)
}

// AddOSMTags loads a TSV tag table from r. The header row must contain a
// `wikidata` and/or `wikipedia` column; other columns are ignored. Rows that
// fail to parse are skipped, I/O errors abort the load.
func (b *Builder) AddOSMTags(r io.Reader) error {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	rdr.ReuseRecord = true

	header, err := rdr.Read()
	if err != nil {
		return wikiextract.Errorf(wikiextract.EINVALID, "reading osm tag header: %v", err)
	}
	qidCol, titleCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "wikidata":
			qidCol = i
		case "wikipedia":
			titleCol = i
		}
	}
	if qidCol < 0 && titleCol < 0 {
		return wikiextract.Errorf(wikiextract.EINVALID, "osm tag file has neither a 'wikidata' nor a 'wikipedia' column")
	}

	for {
		row, err := rdr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			b.skip("osm-tags", int(parseErr.Line), "", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("reading osm tag row: %w", err)
		}

		line, _ := rdr.FieldPos(0)
		if qidCol >= 0 && qidCol < len(row) {
			if cell := strings.TrimSpace(row[qidCol]); cell != "" {
				if qid, err := wikiextract.ParseQID(cell); err != nil {
					b.skip("osm-tags", line, cell, err)
				} else {
					b.set.AddQID(qid)
				}
			}
		}
		if titleCol >= 0 && titleCol < len(row) {
			if cell := strings.TrimSpace(row[titleCol]); cell != "" {
				if title, err := wikiextract.ParseTitleFromOSMTag(cell); err != nil {
					b.skip("osm-tags", line, cell, err)
				} else {
					b.set.AddTitle(title)
				}
			}
		}
	}
	b.sources++
	return nil
}

// Skipped returns the number of malformed entries dropped across all loads.
func (b *Builder) Skipped() int { return b.skipped }

// Build returns the accumulated FilterSet. Loading zero sources fails fast:
// an unfiltered run would match every article in the dump.
func (b *Builder) Build() (*wikiextract.FilterSet, error) {
	if b.sources == 0 {
		return nil, wikiextract.Errorf(wikiextract.EINVALID, "no filter configured: provide wikidata qids, wikipedia urls, or osm tags")
	}
	return b.set, nil
}

func (b *Builder) addFile(path string, load func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening filter file: %w", err)
	}
	defer f.Close()

	if err := load(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("loading filter file %q: %w", path, err)
	}
	return nil
}

func (b *Builder) scanLines(r io.Reader, source string, add func(string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := add(text); err != nil {
			b.skip(source, line, text, err)
		}
	}
	return sc.Err()
}

func (b *Builder) skip(source string, line int, text string, err error) {
	b.skipped++
	b.logger.Warn("skipping malformed filter entry",
		"source", source,
		"line", line,
		"text", text,
		"err", err,
	)
}
