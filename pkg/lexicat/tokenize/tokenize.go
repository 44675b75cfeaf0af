package tokenize

import (
	"fmt"
	"strings"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
)

// Morpheme is one unit produced by a morphological analyzer.
type Morpheme struct {
	Surface  string
	BaseForm string
	POS      []string // major, minor, ... (e.g. 名詞, 固有名詞)
}

// Analyzer segments text into part-of-speech tagged morphemes.
type Analyzer interface {
	Analyze(text string) ([]Morpheme, error)
}

// Tokenizer turns text into the ordered word tokens looked up in a lexicon.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// POSPair is a (major, minor) part-of-speech tag.
type POSPair struct {
	Major string
	Minor string
}

func (p POSPair) String() string {
	return p.Major + "," + p.Minor
}

// POSFilter is an allow-list of POS pairs. Empty allows everything.
type POSFilter []POSPair

// Allows reports whether a morpheme's tags match any pair.
func (f POSFilter) Allows(m Morpheme) bool {
	if len(f) == 0 {
		return true
	}
	if len(m.POS) < 2 {
		return false
	}
	for _, p := range f {
		if m.POS[0] == p.Major && m.POS[1] == p.Minor {
			return true
		}
	}
	return false
}

// ParsePOSFilter parses "major,minor" strings.
func ParsePOSFilter(specs []string) (POSFilter, error) {
	f := make(POSFilter, 0, len(specs))
	for _, s := range specs {
		major, minor, ok := strings.Cut(s, ",")
		major, minor = strings.TrimSpace(major), strings.TrimSpace(minor)
		if !ok || major == "" || minor == "" {
			return nil, fmt.Errorf("%w: pos pair %q, want \"major,minor\"", internalerr.ErrInvalidConfig, s)
		}
		f = append(f, POSPair{Major: major, Minor: minor})
	}
	return f, nil
}

// Filter keeps morphemes allowed by f, in order.
func Filter(ms []Morpheme, f POSFilter) []Morpheme {
	out := make([]Morpheme, 0, len(ms))
	for _, m := range ms {
		if f.Allows(m) {
			out = append(out, m)
		}
	}
	return out
}

// Render selects which form of a morpheme becomes the token.
type Render int

const (
	// RenderBaseForm emits the dictionary form, falling back to the surface.
	RenderBaseForm Render = iota
	// RenderSurface emits the text as written.
	RenderSurface
)

// ParseRender maps "base" / "surface" to a Render.
func ParseRender(s string) (Render, error) {
	switch s {
	case "", "base":
		return RenderBaseForm, nil
	case "surface":
		return RenderSurface, nil
	}
	return 0, fmt.Errorf("%w: render %q", internalerr.ErrInvalidConfig, s)
}

func (r Render) token(m Morpheme) string {
	if r == RenderBaseForm && m.BaseForm != "" && m.BaseForm != "*" {
		return m.BaseForm
	}
	return m.Surface
}

// Adapter composes an Analyzer with a POS filter into a Tokenizer.
type Adapter struct {
	analyzer Analyzer
	filter   POSFilter
	render   Render
}

// NewAdapter creates a tokenizer over analyzer.
func NewAdapter(analyzer Analyzer, filter POSFilter, render Render) *Adapter {
	return &Adapter{analyzer: analyzer, filter: filter, render: render}
}

// Tokenize analyzes, filters and renders text.
// Analyzer failures are reported as ErrTokenizer, never as an empty result.
func (a *Adapter) Tokenize(text string) ([]string, error) {
	ms, err := a.analyzer.Analyze(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTokenizer, err)
	}

	kept := Filter(ms, a.filter)
	tokens := make([]string, 0, len(kept))
	for _, m := range kept {
		tok := a.render.token(m)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
