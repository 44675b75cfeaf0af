package lexicat

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexicat/pkg/lexicat/dataset"
	"github.com/cognicore/lexicat/pkg/lexicat/eval"
	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/lexicon"
	"github.com/cognicore/lexicat/pkg/lexicat/score"
	"github.com/cognicore/lexicat/pkg/lexicat/tokenize"
)

// Lexicat scores texts against a lexicon and evaluates the rankings
type Lexicat struct {
	lex     *lexicon.Lexicon
	scorer  *score.Scorer
	logger  *log.Logger
	entropy *ulid.MonotonicEntropy
}

// Options configures a Lexicat instance
type Options struct {
	Lexicon   *lexicon.Lexicon
	Tokenizer tokenize.Tokenizer
	Logger    *log.Logger
}

// New creates a Lexicat instance with the given dependencies
func New(opts Options) *Lexicat {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Lexicat{
		lex:     opts.Lexicon,
		scorer:  score.NewScorer(opts.Lexicon, opts.Tokenizer),
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close releases the lexicon
func (k *Lexicat) Close() error {
	return k.lex.Close()
}

// ScoreText ranks categories for a single text, keeping the top k (k <= 0 keeps all)
func (k *Lexicat) ScoreText(ctx context.Context, text string, topK int) ([]score.Category, error) {
	cats, err := k.scorer.Score(ctx, text)
	if err != nil {
		return nil, err
	}
	return score.Top(cats, topK), nil
}

// Report is the result of one evaluation run
type Report struct {
	RunID  string        `json:"run_id"`
	Splits []SplitReport `json:"splits"`
}

// SplitReport holds the outcomes of one split at one rank threshold
type SplitReport struct {
	Split     string           `json:"split"`
	Rank      int              `json:"rank"`
	Documents []DocumentResult `json:"documents"`
	Summary   eval.Summary     `json:"summary"`
}

// DocumentResult is the top-K prediction for one document
type DocumentResult struct {
	PageTitle string           `json:"page_title"`
	Gold      string           `json:"gold_label"`
	Top       []score.Category `json:"top"`
	Hit       bool             `json:"hit"`
}

// Evaluate scores every document once and checks the gold label against the
// top K categories for each rank. A split without documents aborts the run
// with ErrEmptyGroup; reports for earlier splits are returned with the error.
func (k *Lexicat) Evaluate(ctx context.Context, data dataset.Evaluation, ranks []int) (Report, error) {
	if len(ranks) == 0 {
		return Report{}, fmt.Errorf("%w: no rank thresholds", internalerr.ErrInvalidInput)
	}
	for _, r := range ranks {
		if r <= 0 {
			return Report{}, fmt.Errorf("%w: rank must be positive, got %d", internalerr.ErrInvalidInput, r)
		}
	}

	report := Report{RunID: ulid.MustNew(ulid.Now(), k.entropy).String()}

	for _, sp := range data.Splits() {
		if len(sp.Documents) == 0 {
			return report, fmt.Errorf("split %s: %w", sp.Name, internalerr.ErrEmptyGroup)
		}

		ranked := make([][]score.Category, len(sp.Documents))
		for i, doc := range sp.Documents {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			cats, err := k.scorer.Score(ctx, doc.Text)
			if err != nil {
				return report, fmt.Errorf("split %s page %q: %w", sp.Name, doc.PageTitle, err)
			}
			ranked[i] = cats
		}

		for _, rank := range ranks {
			sr, err := k.evaluateSplit(report.RunID, sp, ranked, rank)
			if err != nil {
				return report, err
			}
			report.Splits = append(report.Splits, sr)
		}
	}

	return report, nil
}

func (k *Lexicat) evaluateSplit(runID string, sp dataset.Split, ranked [][]score.Category, rank int) (SplitReport, error) {
	sr := SplitReport{
		Split:     sp.Name,
		Rank:      rank,
		Documents: make([]DocumentResult, 0, len(sp.Documents)),
	}
	outcomes := make([]eval.Outcome, 0, len(sp.Documents))

	for i, doc := range sp.Documents {
		top := score.Top(ranked[i], rank)
		outcome := eval.Evaluate(doc.GoldLabel, top)
		outcomes = append(outcomes, outcome)
		sr.Documents = append(sr.Documents, DocumentResult{
			PageTitle: doc.PageTitle,
			Gold:      doc.GoldLabel,
			Top:       top,
			Hit:       outcome.Hit,
		})
		k.logger.Printf("run=%s split=%s rank=%d page=%s hit=%t top=%s",
			runID, sp.Name, rank, doc.PageTitle, outcome.Hit, formatCategories(top))
	}

	summary, err := eval.Summarize(outcomes)
	if err != nil {
		return sr, fmt.Errorf("split %s rank %d: %w", sp.Name, rank, err)
	}
	sr.Summary = summary

	k.logger.Print(strings.Repeat("=", 40))
	k.logger.Printf("run=%s Accuracy of %s text when rank=%d", runID, sp.Name, rank)
	k.logger.Printf("run=%s Accuracy; %.3f = %d / %d", runID, summary.Overall.Accuracy, summary.Overall.Hits, summary.Overall.Total)
	for _, g := range summary.Groups {
		k.logger.Printf("run=%s Accuracy of category=%s", runID, g)
	}
	k.logger.Print(strings.Repeat("+", 40))

	return sr, nil
}

func formatCategories(cats []score.Category) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = fmt.Sprintf("%s:%.4f", c.Label, c.Score)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
