package main

import (
	"fmt"
	"io"

	"github.com/mapwiki/wikiextract/goquery"
	"github.com/mapwiki/wikiextract/htmltomarkdown"
)

// Run executes the simplify command: one article in on stdin, simplified
// article out on stdout.
func (c *SimplifyCmd) Run(deps *Dependencies) error {
	raw, err := io.ReadAll(deps.Stdin)
	if err != nil {
		return fmt.Errorf("reading article from stdin: %w", err)
	}
	html := string(raw)

	lang := c.Lang
	if lang == "" {
		detected, ok := goquery.DetectLang(html)
		if !ok {
			detected = "en"
		}
		lang = detected
		deps.Logger.Debug("detected article language", "lang", lang)
	}

	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	out, err := goquery.NewSimplifier(cfg).Simplify(html, lang)
	if err != nil {
		return err
	}
	if c.Format == "markdown" {
		out, err = htmltomarkdown.NewConverter().Convert(out)
		if err != nil {
			return err
		}
	}

	_, err = io.WriteString(deps.Stdout, out)
	return err
}
