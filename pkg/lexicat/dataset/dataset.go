package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
)

// Split names, in evaluation order.
const (
	SplitSummary = "summary"
	SplitFull    = "full"
)

// Document is one labeled evaluation text
type Document struct {
	PageTitle string `json:"page_title"`
	Text      string `json:"text"`
	GoldLabel string `json:"gold_label"`
}

// Evaluation is the evaluation file: lead sections and full articles
type Evaluation struct {
	Summary []Document `json:"summary"`
	Full    []Document `json:"full"`
}

// Splits returns the named document sets in evaluation order.
func (e Evaluation) Splits() []Split {
	return []Split{
		{Name: SplitSummary, Documents: e.Summary},
		{Name: SplitFull, Documents: e.Full},
	}
}

// Split is a named list of documents
type Split struct {
	Name      string
	Documents []Document
}

// Article is a page to fetch and the gold label to attach to it
type Article struct {
	Title string `yaml:"title" json:"title"`
	Label string `yaml:"label" json:"label"`
}

// Load reads an evaluation file. Both the summary and full lists must be
// present; either may be empty.
func Load(path string) (Evaluation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Evaluation{}, fmt.Errorf("%w: evaluation data %s", internalerr.ErrMissingInputFile, path)
		}
		return Evaluation{}, fmt.Errorf("read file %s: %w", path, err)
	}

	var raw struct {
		Summary *[]Document `json:"summary"`
		Full    *[]Document `json:"full"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %s: %v", internalerr.ErrMalformedRecord, path, err)
	}
	if raw.Summary == nil {
		return Evaluation{}, fmt.Errorf("%w: %s has no %q list", internalerr.ErrMalformedRecord, path, SplitSummary)
	}
	if raw.Full == nil {
		return Evaluation{}, fmt.Errorf("%w: %s has no %q list", internalerr.ErrMalformedRecord, path, SplitFull)
	}
	ev := Evaluation{Summary: *raw.Summary, Full: *raw.Full}

	for _, sp := range ev.Splits() {
		for i, d := range sp.Documents {
			if d.GoldLabel == "" {
				return Evaluation{}, fmt.Errorf("%w: %s[%d] (%s) has no gold_label", internalerr.ErrMalformedRecord, sp.Name, i, d.PageTitle)
			}
		}
	}
	return ev, nil
}

// Save writes an evaluation file as indented UTF-8 JSON.
func Save(path string, ev Evaluation) error {
	if ev.Summary == nil {
		ev.Summary = []Document{}
	}
	if ev.Full == nil {
		ev.Full = []Document{}
	}
	data, err := json.MarshalIndent(ev, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file %s: %w", path, err)
	}
	return nil
}

// LoadArticles reads a YAML list of articles to fetch.
//
// Expected format:
//
//	articles:
//	  - title: マジックリン
//	    label: 暮らし・住まい-バス・トイレ・洗面用品
func LoadArticles(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: article list %s", internalerr.ErrMissingInputFile, path)
		}
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var list struct {
		Articles []Article `yaml:"articles"`
	}
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrMalformedRecord, path, err)
	}
	for i, a := range list.Articles {
		if a.Title == "" || a.Label == "" {
			return nil, fmt.Errorf("%w: article %d needs title and label", internalerr.ErrMalformedRecord, i)
		}
	}
	return list.Articles, nil
}
