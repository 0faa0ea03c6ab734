package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mapwiki/wikiextract"
	"github.com/mapwiki/wikiextract/extract"
	"github.com/mapwiki/wikiextract/fs"
)

// Run executes the run command: the two-phase extraction over every dump,
// sharing one discovery log so URL-referenced articles are extracted in all
// languages.
func (c *RunCmd) Run(deps *Dependencies) error {
	filters, err := c.FilterFlags.build(deps.Logger)
	if err != nil {
		return err
	}

	pieces, err := c.OutputFlags.build(c.Output, deps.Logger)
	if err != nil {
		return err
	}

	logPath := c.NewQIDs
	if logPath == "" {
		logPath = filepath.Join(c.Output, "new_qids.txt")
	}
	discovery, err := fs.OpenDiscoveryLog(logPath)
	if err != nil {
		return err
	}
	defer discovery.Close()

	tp := &extract.TwoPhase{
		Seed:       filters,
		Simplifier: pieces.simplifier,
		Converter:  pieces.converter,
		Store:      pieces.store,
		Logger:     deps.Logger,
		NoSimplify: c.NoSimplify,
		Discovery:  discovery,
		ReadDiscovered: func() ([]wikiextract.QID, error) {
			return fs.ReadDiscoveryLog(logPath)
		},
		OpenDump: func(path string) (io.ReadCloser, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("opening dump: %w", err)
			}
			return f, nil
		},
	}

	// Per-record failures only show up in the counters; the exit code
	// reflects stream-level failures alone.
	res, err := tp.Run(deps.Ctx, c.Dumps)
	if res != nil {
		logResult(deps.Logger, res)
	}
	return err
}
