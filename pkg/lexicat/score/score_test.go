package score

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/lexicon"
	"github.com/cognicore/lexicat/pkg/lexicat/store"
	"github.com/cognicore/lexicat/pkg/lexicat/store/memstore"
)

type fixedTokenizer struct {
	tokens []string
	err    error
}

func (f fixedTokenizer) Tokenize(string) ([]string, error) { return f.tokens, f.err }

type brokenLookup struct{}

func (brokenLookup) Lookup(context.Context, string) ([]store.Entry, bool, error) {
	return nil, false, errors.New("database is locked")
}

func sampleLexicon() *lexicon.Lexicon {
	st := memstore.New()
	st.Add("A", store.Entry{Label: "X", Score: 1.0})
	st.Add("A", store.Entry{Label: "Y", Score: 2.0})
	st.Add("B", store.Entry{Label: "X", Score: 3.0})
	return lexicon.FromStore(st)
}

func TestScoreAggregates(t *testing.T) {
	got, err := Score("A B C", sampleLexicon(), fixedTokenizer{tokens: []string{"A", "B", "C"}})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := []Category{{Label: "X", Score: 4.0}, {Label: "Y", Score: 2.0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScoreRepeatedTokensCountEachTime(t *testing.T) {
	got, err := Score("", sampleLexicon(), fixedTokenizer{tokens: []string{"B", "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Score != 6.0 {
		t.Errorf("expected X=6, got %v", got)
	}
}

func TestUnknownTokensDoNotChangeScores(t *testing.T) {
	lex := sampleLexicon()
	base, _ := Score("", lex, fixedTokenizer{tokens: []string{"A", "B"}})

	for _, extra := range [][]string{
		{"C"},
		{"C", "D", "E"},
		{"", "a", "b"},
	} {
		tokens := append([]string{"A"}, extra...)
		tokens = append(tokens, "B")
		got, err := Score("", lex, fixedTokenizer{tokens: tokens})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, base) {
			t.Errorf("tokens %v: got %v, want %v", tokens, got, base)
		}
	}
}

func TestScoreNoMatch(t *testing.T) {
	got, err := Score("", sampleLexicon(), fixedTokenizer{tokens: []string{"C"}})
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", got)
	}
}

func TestScorePropagatesTokenizerFailure(t *testing.T) {
	tokErr := errors.Join(internalerr.ErrTokenizer, errors.New("mecab died"))
	_, err := Score("", sampleLexicon(), fixedTokenizer{err: tokErr})
	if !errors.Is(err, internalerr.ErrTokenizer) {
		t.Fatalf("expected ErrTokenizer, got %v", err)
	}
}

func TestScoreTagsUntaggedTokenizerFailure(t *testing.T) {
	cause := errors.New("dictionary unavailable")
	_, err := Score("", sampleLexicon(), fixedTokenizer{err: cause})
	if !errors.Is(err, internalerr.ErrTokenizer) {
		t.Fatalf("expected ErrTokenizer, got %v", err)
	}
	if !strings.Contains(err.Error(), "dictionary unavailable") {
		t.Errorf("cause should be kept in the message: %v", err)
	}
}

func TestScorePropagatesLookupFailure(t *testing.T) {
	_, err := Score("", brokenLookup{}, fixedTokenizer{tokens: []string{"A"}})
	if !errors.Is(err, internalerr.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestAggregateTieBreakByLabelDescending(t *testing.T) {
	entries := []store.Entry{
		{Label: "alpha", Score: 1.0},
		{Label: "gamma", Score: 0.5},
		{Label: "beta", Score: 1.0},
		{Label: "gamma", Score: 0.5},
		{Label: "delta", Score: 3.0},
	}
	got := Labels(Aggregate(entries))
	want := []string{"delta", "gamma", "beta", "alpha"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := []store.Entry{{Label: "X", Score: 1}, {Label: "Y", Score: 2}, {Label: "X", Score: 3}}
	b := []store.Entry{{Label: "X", Score: 3}, {Label: "X", Score: 1}, {Label: "Y", Score: 2}}
	if !reflect.DeepEqual(Aggregate(a), Aggregate(b)) {
		t.Errorf("aggregation depends on entry order: %v vs %v", Aggregate(a), Aggregate(b))
	}
}

func TestTopOnlyNarrows(t *testing.T) {
	full := Aggregate([]store.Entry{
		{Label: "a", Score: 5}, {Label: "b", Score: 4}, {Label: "c", Score: 4},
		{Label: "d", Score: 2}, {Label: "e", Score: 1}, {Label: "f", Score: 0.5},
	})

	for _, k := range []int{1, 3, 5} {
		top := Top(full, k)
		if len(top) != k {
			t.Fatalf("Top(%d): expected %d entries, got %d", k, k, len(top))
		}
		if !reflect.DeepEqual(top, full[:k]) {
			t.Errorf("Top(%d) is not a prefix of the full ranking: %v", k, top)
		}
	}

	if got := Top(full, 0); len(got) != len(full) {
		t.Errorf("Top(0) should return everything, got %d", len(got))
	}
	if got := Top(full, 100); len(got) != len(full) {
		t.Errorf("Top(100) should return everything, got %d", len(got))
	}
}
