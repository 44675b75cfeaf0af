package config

import (
	"fmt"

	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
	"github.com/cognicore/lexicat/pkg/lexicat/tokenize/kagome"
	"github.com/cognicore/lexicat/pkg/lexicat/tokenize/plain"
)

// Loader constructs runtime components from a Config
type Loader struct {
	Config Config
}

// Components holds all loaded configuration components
type Components struct {
	Analyzer  tokenize.Analyzer
	Filter    tokenize.POSFilter
	Tokenizer tokenize.Tokenizer
}

// Load builds the analyzer and tokenizer described by the config
func (l *Loader) Load() (*Components, error) {
	cfg := l.Config
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{}

	filter, err := cfg.Filter()
	if err != nil {
		return nil, err
	}
	comp.Filter = filter

	render, err := tokenize.ParseRender(cfg.Render)
	if err != nil {
		return nil, err
	}

	switch cfg.Analyzer {
	case AnalyzerPlain:
		var stops []string
		if cfg.Stoplist != "" {
			sl, err := LoadStoplist(cfg.Stoplist)
			if err != nil {
				return nil, fmt.Errorf("load stoplist: %w", err)
			}
			stops = sl.Terms
		}
		comp.Analyzer = plain.New(stops)
	default:
		a, err := kagome.New()
		if err != nil {
			return nil, fmt.Errorf("load analyzer: %w", err)
		}
		comp.Analyzer = a
	}

	comp.Tokenizer = tokenize.NewAdapter(comp.Analyzer, comp.Filter, render)
	return comp, nil
}
