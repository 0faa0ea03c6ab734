package wikiextract

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed simplify.yml
var defaultConfig []byte

// Config holds the per-language simplification rules. It is loaded once at
// process start and immutable for the process's lifetime.
type Config struct {
	// SectionsToRemove maps a language code to the header titles of
	// sections to drop, in application order. A language without an entry
	// gets the generic cleanup only.
	SectionsToRemove map[string][]string `yaml:"sections_to_remove"`
}

// Validate returns an error if the config contains invalid rules.
func (c *Config) Validate() error {
	for lang, titles := range c.SectionsToRemove {
		if lang == "" {
			return Errorf(EINVALID, "section rule with empty language code")
		}
		for _, title := range titles {
			if title == "" {
				return Errorf(EINVALID, "empty section title for language %q", lang)
			}
		}
	}
	return nil
}

// DefaultConfig parses the simplification rules embedded in the binary.
func DefaultConfig() (*Config, error) {
	return parseConfig(defaultConfig)
}

// LoadConfig reads simplification rules from a YAML file. A malformed config
// is a startup error, never a per-record error.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf(EINVALID, "reading simplification config %q: %v", path, err)
	}
	return parseConfig(raw)
}

func parseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, Errorf(EINVALID, "parsing simplification config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
