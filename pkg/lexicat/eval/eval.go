package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/score"
)

// Separator splits hierarchical labels such as "家電-その他".
const Separator = "-"

// Outcome records whether a document's gold label was predicted.
type Outcome struct {
	Gold string `json:"gold_label"`
	Hit  bool   `json:"hit"`
}

// Evaluate reports a hit when gold appears among predicted.
// Truncating predicted to the top K is the caller's job.
func Evaluate(gold string, predicted []score.Category) Outcome {
	for _, c := range predicted {
		if c.Label == gold {
			return Outcome{Gold: gold, Hit: true}
		}
	}
	return Outcome{Gold: gold, Hit: false}
}

// GroupAccuracy is the hit rate for one group of outcomes.
type GroupAccuracy struct {
	Key      string  `json:"key,omitempty"`
	Accuracy float64 `json:"accuracy"`
	Hits     int     `json:"hits"`
	Total    int     `json:"total"`
}

func (g GroupAccuracy) String() string {
	return fmt.Sprintf("%s: %.3f (%d/%d)", g.Key, g.Accuracy, g.Hits, g.Total)
}

// Summary holds per-group and overall accuracy.
type Summary struct {
	Groups  []GroupAccuracy `json:"groups"`
	Overall GroupAccuracy   `json:"overall"`
}

// CoarseKey returns the label up to its first separator.
func CoarseKey(label string) string {
	key, _, _ := strings.Cut(label, Separator)
	return key
}

// KeyAtDepth keeps the first depth separator-delimited levels of a label.
// KeyAtDepth(1) is CoarseKey.
func KeyAtDepth(depth int) func(string) string {
	return func(label string) string {
		if depth <= 0 {
			return label
		}
		parts := strings.SplitN(label, Separator, depth+1)
		if len(parts) > depth {
			parts = parts[:depth]
		}
		return strings.Join(parts, Separator)
	}
}

// Summarize groups outcomes by CoarseKey.
func Summarize(outcomes []Outcome) (Summary, error) {
	return SummarizeBy(outcomes, CoarseKey)
}

// SummarizeBy groups outcomes by key(gold) and computes accuracy per group
// and overall. Groups are ordered by key descending. An empty outcome set
// is a division error, not a zero accuracy.
func SummarizeBy(outcomes []Outcome, key func(string) string) (Summary, error) {
	overall, err := accuracy("", outcomes)
	if err != nil {
		return Summary{}, fmt.Errorf("overall: %w", err)
	}

	groups := make(map[string][]Outcome)
	for _, o := range outcomes {
		k := key(o.Gold)
		groups[k] = append(groups[k], o)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	sum := Summary{Overall: overall, Groups: make([]GroupAccuracy, 0, len(keys))}
	for _, k := range keys {
		g, err := accuracy(k, groups[k])
		if err != nil {
			return Summary{}, fmt.Errorf("group %q: %w", k, err)
		}
		sum.Groups = append(sum.Groups, g)
	}
	return sum, nil
}

func accuracy(key string, outcomes []Outcome) (GroupAccuracy, error) {
	if len(outcomes) == 0 {
		return GroupAccuracy{}, internalerr.ErrEmptyGroup
	}
	hits := 0
	for _, o := range outcomes {
		if o.Hit {
			hits++
		}
	}
	return GroupAccuracy{
		Key:      key,
		Accuracy: float64(hits) / float64(len(outcomes)),
		Hits:     hits,
		Total:    len(outcomes),
	}, nil
}
