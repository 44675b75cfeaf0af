package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/cognicore/lexicat/internal/wikipedia"
	"github.com/cognicore/lexicat/pkg/lexicat/dataset"
)

func main() {
	var (
		articlesPath = flag.String("articles", "", "YAML list of {title, label} (required)")
		outPath      = flag.String("output", "", "Evaluation JSON to write (required)")
		lang         = flag.String("lang", "ja", "Wikipedia language edition")
		sentences    = flag.Int("sentences", 3, "Sentences per summary")
		delay        = flag.Duration("delay", wikipedia.DefaultDelay, "Pause between requests")
	)
	flag.Parse()

	if *articlesPath == "" {
		log.Fatal("--articles required")
	}
	if *outPath == "" {
		log.Fatal("--output required")
	}

	articles, err := dataset.LoadArticles(*articlesPath)
	if err != nil {
		log.Fatal("Failed to load articles:", err)
	}
	log.Printf("Loaded %d articles from %s", len(articles), *articlesPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := wikipedia.New(*lang)
	client.Delay = *delay
	client.Logger = log.Default()

	start := time.Now()
	ev, err := client.Fetch(ctx, articles, *sentences)
	if err != nil {
		log.Fatal("Fetch aborted: ", err)
	}

	if err := dataset.Save(*outPath, ev); err != nil {
		log.Fatal("Failed to save:", err)
	}
	log.Printf("Saved %d summaries and %d full pages to %s in %s",
		len(ev.Summary), len(ev.Full), *outPath, time.Since(start).Round(time.Second))
}
