package main

import (
	"context"
	"io"
	"log/slog"
)

// Dependencies holds the runtime surface commands execute against. Tests
// inject buffers here instead of touching the process's std streams.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Extract  ExtractCmd  `cmd:"" help:"Extract matching articles from one dump"`
	Simplify SimplifyCmd `cmd:"" help:"Simplify a single article read from stdin"`
	Run      RunCmd      `cmd:"" help:"Run the two-phase extraction over a set of dumps"`
}

// FilterFlags are the identifier sources shared by extract and run.
type FilterFlags struct {
	OsmTags       []string `name:"osm-tags" type:"existingfile" help:"OSM tag export (TSV with wikidata/wikipedia columns, repeatable)"`
	WikidataQIDs  []string `name:"wikidata-qids" type:"existingfile" help:"File of Wikidata QIDs, one per line (repeatable)"`
	WikipediaURLs []string `name:"wikipedia-urls" type:"existingfile" help:"File of Wikipedia URLs or lang:title tags, one per line (repeatable)"`
}

// OutputFlags shape how matched articles are written.
type OutputFlags struct {
	Format     string `default:"html" enum:"html,markdown" help:"Artifact format: html or markdown"`
	NoSimplify bool   `help:"Store article HTML as-is, skipping simplification"`
	Config     string `type:"existingfile" help:"YAML file overriding the built-in simplification rules"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Dump   string `arg:"" help:"Dump file (NDJSON), or '-' for stdin"`
	Output string `arg:"" help:"Output directory"`

	FilterFlags
	OutputFlags
	WriteNewQIDs string `name:"write-new-qids" help:"Append QIDs of URL-matched articles to this shared file"`
	Passthrough  string `help:"Copy matched raw records to this file ('-' for stdout)"`
}

// SimplifyCmd is the "simplify" subcommand.
type SimplifyCmd struct {
	Lang   string `help:"Wikipedia language code; detected from the article's base URL when omitted"`
	Format string `default:"html" enum:"html,markdown" help:"Output format: html or markdown"`
	Config string `type:"existingfile" help:"YAML file overriding the built-in simplification rules"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Output string   `arg:"" help:"Output directory"`
	Dumps  []string `arg:"" type:"existingfile" help:"Per-language dump files (NDJSON)"`

	FilterFlags
	OutputFlags
	NewQIDs string `name:"new-qids" help:"Discovery log path (default: <output>/new_qids.txt)"`
}
