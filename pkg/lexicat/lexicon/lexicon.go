package lexicon

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/store"
	"github.com/cognicore/lexicat/pkg/lexicat/store/memstore"
	"github.com/cognicore/lexicat/pkg/lexicat/store/sqlite"
)

// DefaultBatchSize is the flush interval used for persistent builds.
const DefaultBatchSize = 10000

// Options controls how a Lexicon is built.
type Options struct {
	// BatchSize is the number of records buffered before a flush to the
	// persistent store. Must be positive.
	BatchSize int
	// Persistent selects the SQLite backing instead of an in-memory map.
	Persistent bool
	// Dir is the parent for the temporary database directory.
	// Empty means os.TempDir().
	Dir string
	// Logger receives progress lines. Nil means log.Default().
	Logger *log.Logger
}

// Lexicon maps a word to every (label, score) pair recorded for it.
// It is read-only once built.
type Lexicon struct {
	store store.Store
	dir   string

	closeOnce sync.Once
	closeErr  error
}

// FromStore wraps an already populated store.
func FromStore(st store.Store) *Lexicon {
	return &Lexicon{store: st}
}

// Build reshapes flat records into a Lexicon.
//
// With a persistent backing, records are buffered and merged into the store
// every BatchSize records; the result is identical to an in-memory build.
// The caller owns the returned Lexicon and must Close it.
func Build(ctx context.Context, records []Record, opts Options) (*Lexicon, error) {
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", internalerr.ErrInvalidInput, opts.BatchSize)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	logger.Printf("Loaded N(record)=%d", len(records))

	if !opts.Persistent {
		st := memstore.New()
		for _, rec := range records {
			st.Add(rec.Word, store.Entry{Label: rec.Label, Score: rec.Score})
		}
		return &Lexicon{store: st}, nil
	}

	dir, err := os.MkdirTemp(opts.Dir, "lexicat-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	st, err := sqlite.OpenSQLite(ctx, filepath.Join(dir, "lexicon.sqlite3"))
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	lex := &Lexicon{store: st, dir: dir}

	buf := newBuffer()
	for i, rec := range records {
		buf.add(rec)
		if (i+1)%opts.BatchSize == 0 {
			if err := buf.flush(ctx, st); err != nil {
				lex.Close()
				return nil, err
			}
			logger.Printf("Processed %d records now.", i+1)
		}
	}
	if err := buf.flush(ctx, st); err != nil {
		lex.Close()
		return nil, err
	}

	return lex, nil
}

// Lookup returns the entries recorded for word.
func (l *Lexicon) Lookup(ctx context.Context, word string) ([]store.Entry, bool, error) {
	return l.store.Entries(ctx, word)
}

// Stats reports the number of words and entries.
func (l *Lexicon) Stats(ctx context.Context) (store.Stats, error) {
	return l.store.Stats(ctx)
}

// Close releases the backing store and removes any temporary files.
// Safe to call more than once.
func (l *Lexicon) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.store.Close()
		if l.dir != "" {
			if err := os.RemoveAll(l.dir); err != nil && l.closeErr == nil {
				l.closeErr = err
			}
		}
	})
	return l.closeErr
}

// buffer is the transient word -> entries map between flushes.
type buffer struct {
	order []string
	words map[string][]store.Entry
}

func newBuffer() *buffer {
	return &buffer{words: make(map[string][]store.Entry)}
}

func (b *buffer) add(rec Record) {
	if _, ok := b.words[rec.Word]; !ok {
		b.order = append(b.order, rec.Word)
	}
	b.words[rec.Word] = append(b.words[rec.Word], store.Entry{Label: rec.Label, Score: rec.Score})
}

func (b *buffer) flush(ctx context.Context, st store.Store) error {
	if len(b.order) == 0 {
		return nil
	}
	batch := make([]store.WordEntries, 0, len(b.order))
	for _, w := range b.order {
		batch = append(batch, store.WordEntries{Word: w, Entries: b.words[w]})
	}
	if err := st.Append(ctx, batch); err != nil {
		return fmt.Errorf("%w: flush batch: %v", internalerr.ErrStoreUnavailable, err)
	}
	b.order = nil
	b.words = make(map[string][]store.Entry)
	return nil
}
