package plain

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
)

// DefaultPOS is the tag attached to every plain morpheme.
var DefaultPOS = tokenize.POSPair{Major: "名詞", Minor: "一般"}

// Analyzer splits text on non-letter/number runes. It has no morphology,
// so every word gets the same POS tag.
type Analyzer struct {
	stopwords map[string]struct{}
	pos       tokenize.POSPair
}

// New creates an analyzer with the given stopword list
func New(stopwords []string) *Analyzer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[normalize(w)] = struct{}{}
	}
	return &Analyzer{stopwords: stops, pos: DefaultPOS}
}

// SetPOS overrides the tag attached to each morpheme.
func (a *Analyzer) SetPOS(p tokenize.POSPair) {
	a.pos = p
}

// Analyze splits NFKC-normalized, lowercased text into words, removing
// stopwords, single runes and pure numbers. It never fails.
func (a *Analyzer) Analyze(text string) ([]tokenize.Morpheme, error) {
	var ms []tokenize.Morpheme
	var current strings.Builder

	emit := func() {
		if current.Len() == 0 {
			return
		}
		if word := a.processToken(current.String()); word != "" {
			ms = append(ms, tokenize.Morpheme{
				Surface:  word,
				BaseForm: word,
				POS:      []string{a.pos.Major, a.pos.Minor},
			})
		}
		current.Reset()
	}

	for _, r := range normalize(text) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(r)
		} else {
			emit()
		}
	}
	emit()

	return ms, nil
}

// processToken applies cleaning and stopword filtering.
func (a *Analyzer) processToken(token string) string {
	word := cleanToken(token)
	if word == "" || len([]rune(word)) <= 1 {
		return ""
	}

	// Mixed tokens like "gpt-4" are kept
	if isNumericOnly(word) {
		return ""
	}

	if _, stop := a.stopwords[word]; stop {
		return ""
	}
	return word
}

// cleanToken strips leading/trailing hyphens and collapses repeated ones
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
