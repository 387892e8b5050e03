package config

import (
	"fmt"

	"github.com/sortwise/sortwise/pkg/sortwise/logic"
	"github.com/sortwise/sortwise/pkg/sortwise/patterns"
)

// Loader loads the auxiliary configuration files and constructs components
type Loader struct {
	SeedPath     string
	PatternsPath string
	LexiconPath  string
	StoplistPath string
}

// Components holds all loaded configuration components
type Components struct {
	SeedLines    []string
	Patterns     *patterns.Set
	Stopwords    []string
	LexiconTerms []string
}

// FromConfig builds a Loader from the application configuration
func FromConfig(cfg *Config) *Loader {
	return &Loader{
		SeedPath:     cfg.SeedPath,
		PatternsPath: cfg.PatternsPath,
		LexiconPath:  cfg.LexiconPath,
		StoplistPath: cfg.StoplistPath,
	}
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.SeedPath != "" {
		lines, err := logic.ReadSeedFile(l.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("load seed: %w", err)
		}
		comp.SeedLines = lines
	}

	if l.PatternsPath != "" {
		set, err := patterns.LoadFromYAML(l.PatternsPath)
		if err != nil {
			return nil, fmt.Errorf("load patterns: %w", err)
		}
		comp.Patterns = set
	} else {
		comp.Patterns = patterns.New(nil)
	}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stopwords = sl.Terms
	}

	if l.LexiconPath != "" {
		lex, err := LoadLexicon(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.LexiconTerms = lex.Terms
	}

	return comp, nil
}
