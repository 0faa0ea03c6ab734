package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/extract"
	"github.com/mapwiki/wikiextract/filter"
	"github.com/mapwiki/wikiextract/fs"
	"github.com/mapwiki/wikiextract/goquery"
	"github.com/mapwiki/wikiextract/htmltomarkdown"
	wslog "github.com/mapwiki/wikiextract/slog"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	filters, err := c.FilterFlags.build(deps.Logger)
	if err != nil {
		return err
	}

	pieces, err := c.OutputFlags.build(c.Output, deps.Logger)
	if err != nil {
		return err
	}

	p := &extract.Pipeline{
		Filters:    filters,
		Simplifier: pieces.simplifier,
		Converter:  pieces.converter,
		Store:      pieces.store,
		Logger:     deps.Logger,
		NoSimplify: c.NoSimplify,
	}

	if c.WriteNewQIDs != "" {
		log, err := fs.OpenDiscoveryLog(c.WriteNewQIDs)
		if err != nil {
			return err
		}
		defer log.Close()
		p.Discovery = log
	}

	if c.Passthrough != "" {
		if c.Passthrough == "-" {
			p.Passthrough = deps.Stdout
		} else {
			f, err := os.Create(c.Passthrough)
			if err != nil {
				return fmt.Errorf("creating passthrough file: %w", err)
			}
			defer f.Close()
			p.Passthrough = f
		}
	}

	in := deps.Stdin
	if c.Dump != "-" {
		f, err := os.Open(c.Dump)
		if err != nil {
			return fmt.Errorf("opening dump: %w", err)
		}
		defer f.Close()
		in = f
	}

	// Per-record failures (decode, simplify, write) only show up in the
	// counters; the exit code reflects stream-level failures alone.
	res, err := p.Run(deps.Ctx, in)
	if res != nil {
		logResult(deps.Logger, res)
	}
	return err
}

func logResult(logger *slog.Logger, res *extract.Result) {
	logger.Info("extraction finished",
		slog.Int("lines", res.Lines),
		slog.Int("matched", res.Matched),
		slog.Int("written", res.Written),
		slog.Int("new_qids", res.NewQIDs),
		slog.Int("record_errors", res.RecordErrors),
		slog.Int("write_errors", res.WriteErrors),
		slog.Int("discovery_errors", res.DiscoveryErrors),
	)
}

// build assembles the seed filter set from the configured source files.
func (f *FilterFlags) build(logger *slog.Logger) (*wikiextract.FilterSet, error) {
	b := filter.NewBuilder(logger)
	for _, path := range f.WikidataQIDs {
		if err := b.AddQIDFile(path); err != nil {
			return nil, err
		}
	}
	for _, path := range f.WikipediaURLs {
		if err := b.AddURLFile(path); err != nil {
			return nil, err
		}
	}
	for _, path := range f.OsmTags {
		if err := b.AddOSMTagsFile(path); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// outputPieces holds the storage-side collaborators an extraction needs.
type outputPieces struct {
	store      *fs.ArticleStore
	simplifier wikiextract.Simplifier
	converter  wikiextract.Converter
}

// build prepares the output directory, simplifier, and optional converter.
func (o *OutputFlags) build(output string, logger *slog.Logger) (*outputPieces, error) {
	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	cfg, err := loadConfig(o.Config)
	if err != nil {
		return nil, err
	}

	pieces := &outputPieces{
		simplifier: wslog.NewLoggingSimplifier(goquery.NewSimplifier(cfg), logger),
	}
	ext := "html"
	if o.Format == "markdown" {
		ext = "md"
		pieces.converter = htmltomarkdown.NewConverter()
	}
	pieces.store = fs.NewArticleStore(output, ext)
	return pieces, nil
}

func loadConfig(path string) (*wikiextract.Config, error) {
	if path == "" {
		return wikiextract.DefaultConfig()
	}
	return wikiextract.LoadConfig(path)
}
