package score

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/store"
	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
)

// Category is a label with its aggregate score for one text.
type Category struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Lookup is the read side of a lexicon.
type Lookup interface {
	Lookup(ctx context.Context, word string) ([]store.Entry, bool, error)
}

// Scorer ranks categories for text using a lexicon and tokenizer.
type Scorer struct {
	lex Lookup
	tok tokenize.Tokenizer
}

// NewScorer creates a scorer.
func NewScorer(lex Lookup, tok tokenize.Tokenizer) *Scorer {
	return &Scorer{lex: lex, tok: tok}
}

// Score tokenizes text, collects lexicon entries for every known token and
// returns per-label sums ordered by Rank. Unknown tokens contribute nothing.
func (s *Scorer) Score(ctx context.Context, text string) ([]Category, error) {
	tokens, err := s.tok.Tokenize(text)
	if err != nil {
		if errors.Is(err, internalerr.ErrTokenizer) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTokenizer, err)
	}

	var entries []store.Entry
	for _, tok := range tokens {
		found, ok, err := s.lex.Lookup(ctx, tok)
		if err != nil {
			return nil, fmt.Errorf("%w: lookup %q: %v", internalerr.ErrStoreUnavailable, tok, err)
		}
		if !ok {
			continue
		}
		entries = append(entries, found...)
	}

	return Aggregate(entries), nil
}

// Score is a convenience wrapper for one-off scoring.
func Score(text string, lex Lookup, tok tokenize.Tokenizer) ([]Category, error) {
	return NewScorer(lex, tok).Score(context.Background(), text)
}

// Aggregate sums entry scores per label. The result is never nil.
func Aggregate(entries []store.Entry) []Category {
	sums := make(map[string]float64)
	for _, e := range entries {
		sums[e.Label] += e.Score
	}

	cats := make([]Category, 0, len(sums))
	for label, total := range sums {
		cats = append(cats, Category{Label: label, Score: total})
	}
	Rank(cats)
	return cats
}

// Rank orders categories by score descending; equal scores are ordered by
// label descending.
func Rank(cats []Category) {
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Score != cats[j].Score {
			return cats[i].Score > cats[j].Score
		}
		return cats[i].Label > cats[j].Label
	})
}

// Top returns the first k categories. k <= 0 returns everything.
func Top(cats []Category, k int) []Category {
	if k <= 0 || k >= len(cats) {
		return cats
	}
	return cats[:k]
}

// Labels extracts the label of each category, in order.
func Labels(cats []Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Label
	}
	return out
}
