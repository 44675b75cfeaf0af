package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/cognicore/lexicat/pkg/lexicat"
	"github.com/cognicore/lexicat/pkg/lexicat/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "Run config YAML (optional if --lexicon and --evaluation are given)")
		lexPath    = flag.String("lexicon", "", "Lexicon JSON file")
		evalPath   = flag.String("evaluation", "", "Evaluation JSON file")
		analyzer   = flag.String("analyzer", "", "Analyzer: kagome or plain")
		ranks      = flag.String("ranks", "", "Comma-separated rank thresholds (default 1,3,5)")
		persistent = flag.Bool("persistent", false, "Back the lexicon with a temporary SQLite database")
		batchSize  = flag.Int("batch-size", 0, "Records per flush when --persistent is set")
		reportPath = flag.String("report", "", "Optional: write the report as JSON to this path")
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

	// Flags override the config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lexicon":
			cfg.Lexicon = *lexPath
		case "evaluation":
			cfg.Evaluation = *evalPath
		case "analyzer":
			cfg.Analyzer = *analyzer
		case "persistent":
			cfg.Persistent = *persistent
		case "batch-size":
			cfg.BatchSize = *batchSize
		}
	})
	if *ranks != "" {
		parsed, err := parseRanks(*ranks)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Ranks = parsed
	}

	if cfg.Lexicon == "" {
		log.Fatal("--lexicon required")
	}
	if cfg.Evaluation == "" {
		log.Fatal("--evaluation required")
	}

	report, err := lexicat.Run(context.Background(), cfg, log.Default())
	if err != nil {
		log.Fatal("Evaluation failed: ", err)
	}

	if *reportPath != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal("Failed to encode report:", err)
		}
		if err := os.WriteFile(*reportPath, data, 0644); err != nil {
			log.Fatal("Failed to write report:", err)
		}
		log.Printf("Report written to %s", *reportPath)
	}
}

func parseRanks(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		k, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || k <= 0 {
			return nil, fmt.Errorf("invalid rank %q", part)
		}
		out = append(out, k)
	}
	return out, nil
}
