package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/lexicat/pkg/lexicat/store"
)

// sqliteStore implements the Store interface using SQLite.
// Each word owns one row holding its JSON-encoded entry list.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS lexicon (
	word TEXT PRIMARY KEY,
	entries TEXT NOT NULL,
	n INTEGER NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Append merges a batch into the table in a single transaction.
// Existing lists are read, extended and written back.
func (s *sqliteStore) Append(ctx context.Context, batch []store.WordEntries) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sel, err := tx.PrepareContext(ctx, `SELECT entries FROM lexicon WHERE word=?`)
	if err != nil {
		return err
	}
	defer sel.Close()

	upsert, err := tx.PrepareContext(ctx, `
INSERT INTO lexicon (word, entries, n) VALUES (?, ?, ?)
ON CONFLICT(word) DO UPDATE SET entries=excluded.entries, n=excluded.n;
`)
	if err != nil {
		return err
	}
	defer upsert.Close()

	for _, we := range batch {
		if len(we.Entries) == 0 {
			continue
		}

		var existing []store.Entry
		var raw string
		err := sel.QueryRowContext(ctx, we.Word).Scan(&raw)
		switch {
		case err == sql.ErrNoRows:
		case err != nil:
			return err
		default:
			if err := json.Unmarshal([]byte(raw), &existing); err != nil {
				return fmt.Errorf("decode entries for %q: %w", we.Word, err)
			}
		}

		merged := append(existing, we.Entries...)
		encoded, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		if _, err := upsert.ExecContext(ctx, we.Word, string(encoded), len(merged)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Entries retrieves the entry list for a word
func (s *sqliteStore) Entries(ctx context.Context, word string) ([]store.Entry, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT entries FROM lexicon WHERE word=?`, word).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entries []store.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("decode entries for %q: %w", word, err)
	}
	return entries, true, nil
}

// Stats counts words and entries
func (s *sqliteStore) Stats(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(n), 0) FROM lexicon`).Scan(&st.Words, &st.Entries)
	return st, err
}
