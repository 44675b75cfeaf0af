package memstore

import (
	"context"
	"sync"

	"github.com/cognicore/lexicat/pkg/lexicat/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	words   map[string][]store.Entry
	entries int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		words: make(map[string][]store.Entry),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Append concatenates each batch element onto the word's existing entries.
func (s *Store) Append(ctx context.Context, batch []store.WordEntries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, we := range batch {
		if len(we.Entries) == 0 {
			continue
		}
		s.words[we.Word] = append(s.words[we.Word], we.Entries...)
		s.entries += len(we.Entries)
	}
	return nil
}

// Add appends a single entry. Used by in-memory builds to avoid per-record batches.
func (s *Store) Add(word string, e store.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words[word] = append(s.words[word], e)
	s.entries++
}

// Entries returns a copy of the entries stored under word.
func (s *Store) Entries(ctx context.Context, word string) ([]store.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, ok := s.words[word]
	if !ok {
		return nil, false, nil
	}
	out := make([]store.Entry, len(entries))
	copy(out, entries)
	return out, true, nil
}

// Stats implements store.Store.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return store.Stats{Words: len(s.words), Entries: s.entries}, nil
}
