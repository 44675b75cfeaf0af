// Package kagome analyzes Japanese text with the kagome morphological
// analyzer and the IPA dictionary. POS tags follow IPADIC, so filters use
// pairs such as (名詞, 固有名詞) or (動詞, 自立).
package kagome

import (
	"fmt"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
)

// Analyzer implements tokenize.Analyzer.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// New loads the IPA dictionary and builds an analyzer.
func New() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("kagome: %w", err)
	}
	return &Analyzer{t: t}, nil
}

// Analyze segments text in normal mode.
func (a *Analyzer) Analyze(text string) ([]tokenize.Morpheme, error) {
	tokens := a.t.Tokenize(text)
	ms := make([]tokenize.Morpheme, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		m := tokenize.Morpheme{
			Surface: tok.Surface,
			POS:     tok.POS(),
		}
		if base, ok := tok.BaseForm(); ok {
			m.BaseForm = base
		}
		ms = append(ms, m)
	}
	return ms, nil
}
