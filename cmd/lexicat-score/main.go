package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cognicore/lexicat/pkg/lexicat"
	"github.com/cognicore/lexicat/pkg/lexicat/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "Run config YAML (optional if --lexicon is given)")
		lexPath    = flag.String("lexicon", "", "Lexicon JSON file")
		analyzer   = flag.String("analyzer", "", "Analyzer: kagome or plain")
		text       = flag.String("text", "", "Text to score (reads stdin when empty)")
		topK       = flag.Int("topk", 5, "Number of categories to print (0 prints all)")
	)
	flag.Parse()

	cfg := config.Config{}
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
		cfg = *loaded
	}
	if *lexPath != "" {
		cfg.Lexicon = *lexPath
	}
	if *analyzer != "" {
		cfg.Analyzer = *analyzer
	}
	if cfg.Lexicon == "" {
		log.Fatal("--lexicon required")
	}

	input := *text
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("Failed to read stdin:", err)
		}
		input = string(data)
	}

	if err := run(context.Background(), cfg, input, *topK, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run opens the lexicon, prints the ranking and closes the lexicon on every
// return path.
func run(ctx context.Context, cfg config.Config, input string, topK int, out io.Writer) error {
	k, err := lexicat.Open(ctx, cfg, log.Default())
	if err != nil {
		return fmt.Errorf("open lexicon: %w", err)
	}
	defer k.Close()

	cats, err := k.ScoreText(ctx, input, topK)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}
	if len(cats) == 0 {
		log.Println("No lexicon words found in text")
		return nil
	}
	for i, c := range cats {
		if _, err := fmt.Fprintf(out, "%d\t%s\t%.6f\n", i+1, c.Label, c.Score); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}
