package lexicon

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
)

// Record is one flat lexicon row: word contributes score to label.
//
// Records are not unique; repeated (word, label) pairs are kept and summed
// at scoring time.
type Record struct {
	Word  string  `json:"word"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Validate reports a malformed record.
func (r Record) Validate() error {
	switch {
	case r.Word == "":
		return fmt.Errorf("%w: empty word", internalerr.ErrMalformedRecord)
	case r.Label == "":
		return fmt.Errorf("%w: empty label for word %q", internalerr.ErrMalformedRecord, r.Word)
	case math.IsNaN(r.Score) || math.IsInf(r.Score, 0):
		return fmt.Errorf("%w: non-finite score for word %q", internalerr.ErrMalformedRecord, r.Word)
	}
	return nil
}

// rawRecord distinguishes absent keys from zero values.
type rawRecord struct {
	Word  *string  `json:"word"`
	Label *string  `json:"label"`
	Score *float64 `json:"score"`
}

// LoadRecords reads a JSON array of {"label", "score", "word"} objects.
//
// A record missing any key fails the whole load; nothing is skipped.
func LoadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: lexicon %s", internalerr.ErrMissingInputFile, path)
		}
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	return ParseRecords(data)
}

// ParseRecords decodes lexicon JSON already in memory.
func ParseRecords(data []byte) ([]Record, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrMalformedRecord, err)
	}

	records := make([]Record, 0, len(raws))
	for i, raw := range raws {
		var missing string
		switch {
		case raw.Word == nil:
			missing = "word"
		case raw.Label == nil:
			missing = "label"
		case raw.Score == nil:
			missing = "score"
		}
		if missing != "" {
			return nil, fmt.Errorf("%w: record %d missing %q", internalerr.ErrMalformedRecord, i, missing)
		}

		rec := Record{Word: *raw.Word, Label: *raw.Label, Score: *raw.Score}
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
