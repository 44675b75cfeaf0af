package store

import "context"

// Store is the backing for a word -> category score lexicon.
//
// Append merges entries into any existing list for the same word by
// concatenation; entry order within a word is the order of Append calls.
type Store interface {
	Close() error

	Append(ctx context.Context, batch []WordEntries) error
	Entries(ctx context.Context, word string) ([]Entry, bool, error)
	Stats(ctx context.Context) (Stats, error)
}

// Entry is one (category label, weight) pair contributed by a word
type Entry struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// WordEntries groups the entries to append under a single word
type WordEntries struct {
	Word    string
	Entries []Entry
}

// Stats summarizes store contents
type Stats struct {
	Words   int // distinct words
	Entries int // total (label, score) pairs across all words
}
