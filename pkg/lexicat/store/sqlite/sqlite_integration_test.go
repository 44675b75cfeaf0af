package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexicat/pkg/lexicat/store"
)

func TestSQLiteAppendMergesAcrossBatches(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	first := []store.WordEntries{
		{Word: "お金", Entries: []store.Entry{{Label: "アウトドア・スポーツ-その他", Score: 0.029}}},
		{Word: "b", Entries: []store.Entry{{Label: "X", Score: 3}}},
	}
	second := []store.WordEntries{
		{Word: "お金", Entries: []store.Entry{{Label: "家電-その他", Score: 0.5}, {Label: "アウトドア・スポーツ-その他", Score: 0.1}}},
	}
	if err := st.Append(ctx, first); err != nil {
		t.Fatalf("Append first: %v", err)
	}
	if err := st.Append(ctx, second); err != nil {
		t.Fatalf("Append second: %v", err)
	}

	entries, ok, err := st.Entries(ctx, "お金")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if !ok {
		t.Fatal("word should be found")
	}
	want := []store.Entry{
		{Label: "アウトドア・スポーツ-その他", Score: 0.029},
		{Label: "家電-その他", Score: 0.5},
		{Label: "アウトドア・スポーツ-その他", Score: 0.1},
	}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %v, want %v", i, entries[i], want[i])
		}
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Words != 2 || stats.Entries != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestSQLiteDuplicateWordInOneBatch(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	batch := []store.WordEntries{
		{Word: "a", Entries: []store.Entry{{Label: "X", Score: 1}}},
		{Word: "a", Entries: []store.Entry{{Label: "Y", Score: 2}}},
	}
	if err := st.Append(ctx, batch); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, _, err := st.Entries(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Label != "X" || entries[1].Label != "Y" {
		t.Errorf("expected [X Y], got %v", entries)
	}
}

func TestSQLiteMissingWord(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer st.Close()

	_, ok, err := st.Entries(ctx, "absent")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("absent word reported as present")
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Words != 0 || stats.Entries != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
