package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
)

// Config represents the top-level application configuration
type Config struct {
	SeedPath     string `yaml:"seed_path"`
	PatternsPath string `yaml:"patterns_path"`
	LexiconPath  string `yaml:"lexicon_path"`
	StoplistPath string `yaml:"stoplist_path"`
	QADBPath     string `yaml:"qa_db_path"`
	LogDir       string `yaml:"log_dir"`

	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	SpellThreshold      float64 `yaml:"spell_threshold"`
	SpellFix            bool    `yaml:"spell_fix"`
	Debug               bool    `yaml:"debug"`
	InferenceBudget     int     `yaml:"inference_budget"`

	WikiBaseURL string `yaml:"wiki_base_url"`
}

// Default returns the configuration used when a field is left unset
func Default() Config {
	return Config{
		LogDir:      "logs",
		SpellFix:    true,
		WikiBaseURL: "https://en.wikipedia.org/api/rest_v1",
	}
}

// Load loads the application configuration from a YAML file.
// Unset fields fall back to Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold must be in [0,1], got %v", internalerr.ErrInvalidConfig, c.SimilarityThreshold)
	}
	if c.SpellThreshold < 0 || c.SpellThreshold > 1 {
		return fmt.Errorf("%w: spell_threshold must be in [0,1], got %v", internalerr.ErrInvalidConfig, c.SpellThreshold)
	}
	if c.InferenceBudget < 0 {
		return fmt.Errorf("%w: inference_budget must be non-negative, got %d", internalerr.ErrInvalidConfig, c.InferenceBudget)
	}
	return nil
}

// Lexicon represents the domain vocabulary configuration
type Lexicon struct {
	Terms []string `yaml:"terms"`
}

// LoadLexicon loads domain vocabulary from a YAML file
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, err
	}

	return &lex, nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
