package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/lexicon"
	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
)

// Analyzer names
const (
	AnalyzerKagome = "kagome"
	AnalyzerPlain  = "plain"
)

// Config holds the parameters of one evaluation run
type Config struct {
	Lexicon    string     `yaml:"lexicon"`
	Evaluation string     `yaml:"evaluation"`
	Stoplist   string     `yaml:"stoplist"`
	Analyzer   string     `yaml:"analyzer"`
	Render     string     `yaml:"render"`
	POSFilter  [][]string `yaml:"pos_filter"`
	Ranks      []int      `yaml:"ranks"`
	Persistent bool       `yaml:"persistent"`
	BatchSize  int        `yaml:"batch_size"`
	TempDir    string     `yaml:"temp_dir"`
}

// DefaultPOSFilter keeps proper, common and sahen nouns and independent verbs.
func DefaultPOSFilter() [][]string {
	return [][]string{
		{"名詞", "固有名詞"},
		{"名詞", "一般"},
		{"名詞", "サ変接続"},
		{"動詞", "自立"},
	}
}

// LoadConfig loads a run configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config %s", internalerr.ErrMissingInputFile, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults populates zero values
func (c *Config) ApplyDefaults() {
	if c.Analyzer == "" {
		c.Analyzer = AnalyzerKagome
	}
	if c.Render == "" {
		c.Render = "base"
	}
	if c.POSFilter == nil {
		c.POSFilter = DefaultPOSFilter()
	}
	if len(c.Ranks) == 0 {
		c.Ranks = []int{1, 3, 5}
	}
	if c.BatchSize == 0 {
		c.BatchSize = lexicon.DefaultBatchSize
	}
}

// Validate checks everything that can be checked without touching files
func (c *Config) Validate() error {
	if c.Lexicon == "" {
		return fmt.Errorf("%w: lexicon path required", internalerr.ErrInvalidConfig)
	}
	if c.Analyzer != AnalyzerKagome && c.Analyzer != AnalyzerPlain {
		return fmt.Errorf("%w: unknown analyzer %q", internalerr.ErrInvalidConfig, c.Analyzer)
	}
	if _, err := tokenize.ParseRender(c.Render); err != nil {
		return err
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	for _, k := range c.Ranks {
		if k <= 0 {
			return fmt.Errorf("%w: rank must be positive, got %d", internalerr.ErrInvalidConfig, k)
		}
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", internalerr.ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

// Filter converts the configured pairs to a POS filter
func (c *Config) Filter() (tokenize.POSFilter, error) {
	f := make(tokenize.POSFilter, 0, len(c.POSFilter))
	for _, pair := range c.POSFilter {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return nil, fmt.Errorf("%w: pos_filter entry %v, want [major, minor]", internalerr.ErrInvalidConfig, pair)
		}
		f = append(f, tokenize.POSPair{Major: pair[0], Minor: pair[1]})
	}
	return f, nil
}

// LexiconOptions maps the storage settings onto lexicon build options
func (c *Config) LexiconOptions() lexicon.Options {
	return lexicon.Options{
		BatchSize:  c.BatchSize,
		Persistent: c.Persistent,
		Dir:        c.TempDir,
	}
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
