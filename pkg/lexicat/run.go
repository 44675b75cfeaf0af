package lexicat

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/cognicore/lexicat/pkg/lexicat/config"
	"github.com/cognicore/lexicat/pkg/lexicat/dataset"
	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
	"github.com/cognicore/lexicat/pkg/lexicat/lexicon"
)

// Open loads the lexicon and tokenizer described by cfg.
// The caller must Close the returned instance.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (*Lexicat, error) {
	if logger == nil {
		logger = log.Default()
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := requireFile("lexicon", cfg.Lexicon); err != nil {
		return nil, err
	}

	loader := config.Loader{Config: cfg}
	components, err := loader.Load()
	if err != nil {
		return nil, err
	}

	records, err := lexicon.LoadRecords(cfg.Lexicon)
	if err != nil {
		return nil, err
	}

	opts := cfg.LexiconOptions()
	opts.Logger = logger
	lex, err := lexicon.Build(ctx, records, opts)
	if err != nil {
		return nil, err
	}

	return New(Options{Lexicon: lex, Tokenizer: components.Tokenizer, Logger: logger}), nil
}

// Run performs a full evaluation: every split of the evaluation file at
// every configured rank. Input files are checked before any work starts and
// the lexicon is released on every exit path.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) (Report, error) {
	if cfg.Evaluation == "" {
		return Report{}, fmt.Errorf("%w: evaluation path required", internalerr.ErrInvalidConfig)
	}
	if err := requireFile("lexicon", cfg.Lexicon); err != nil {
		return Report{}, err
	}
	if err := requireFile("evaluation data", cfg.Evaluation); err != nil {
		return Report{}, err
	}

	data, err := dataset.Load(cfg.Evaluation)
	if err != nil {
		return Report{}, err
	}

	k, err := Open(ctx, cfg, logger)
	if err != nil {
		return Report{}, err
	}
	defer k.Close()

	cfg.ApplyDefaults()
	return k.Evaluate(ctx, data, cfg.Ranks)
}

func requireFile(what, path string) error {
	if path == "" {
		return fmt.Errorf("%w: %s path required", internalerr.ErrInvalidConfig, what)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s %s", internalerr.ErrMissingInputFile, what, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
