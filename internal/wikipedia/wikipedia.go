package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cognicore/lexicat/pkg/lexicat/dataset"
	"github.com/cognicore/lexicat/pkg/lexicat/internalerr"
)

// DefaultDelay is the pause between API requests.
const DefaultDelay = 3 * time.Second

const userAgent = "lexicat-fetch/0.1 (evaluation data builder)"

// Client pulls article text from the MediaWiki extracts API
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Delay      time.Duration
	Logger     *log.Logger
}

// New creates a client for the given language edition (e.g. "ja").
func New(lang string) *Client {
	return &Client{
		BaseURL:    fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Delay:      DefaultDelay,
	}
}

type extractResponse struct {
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// Summary returns the first sentences of the lead section.
func (c *Client) Summary(ctx context.Context, title string, sentences int) (string, error) {
	params := url.Values{}
	params.Set("exintro", "1")
	if sentences > 0 {
		params.Set("exsentences", strconv.Itoa(sentences))
	}
	return c.extract(ctx, title, params)
}

// Page returns the full article text.
func (c *Client) Page(ctx context.Context, title string) (string, error) {
	return c.extract(ctx, title, url.Values{})
}

func (c *Client) extract(ctx context.Context, title string, params url.Values) (string, error) {
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("titles", title)
	params.Set("redirects", "1")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %q", resp.StatusCode, title)
	}

	var body extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode %q: %w", title, err)
	}
	if len(body.Query.Pages) == 0 || body.Query.Pages[0].Missing {
		return "", fmt.Errorf("%w: page %q", internalerr.ErrNotFound, title)
	}

	text := stripHTML(body.Query.Pages[0].Extract)
	if text == "" {
		return "", fmt.Errorf("%w: empty extract for %q", internalerr.ErrNotFound, title)
	}
	return text, nil
}

// Fetch builds an evaluation set: a summary pass then a full-text pass.
// Articles that fail are logged and left out.
func (c *Client) Fetch(ctx context.Context, articles []dataset.Article, sentences int) (dataset.Evaluation, error) {
	var ev dataset.Evaluation

	first := true
	pass := func(name string, get func(string) (string, error)) ([]dataset.Document, error) {
		docs := make([]dataset.Document, 0, len(articles))
		for _, a := range articles {
			if !first {
				if err := c.wait(ctx); err != nil {
					return docs, err
				}
			}
			first = false

			text, err := get(a.Title)
			if err != nil {
				if ctx.Err() != nil {
					return docs, ctx.Err()
				}
				c.logf("Failed to get %s for page=%s: %v", name, a.Title, err)
				continue
			}
			c.logf("Got wikipedia %s page=%s", name, a.Title)
			docs = append(docs, dataset.Document{PageTitle: a.Title, Text: text, GoldLabel: a.Label})
		}
		return docs, nil
	}

	var err error
	ev.Summary, err = pass(dataset.SplitSummary, func(title string) (string, error) {
		return c.Summary(ctx, title, sentences)
	})
	if err != nil {
		return ev, err
	}
	ev.Full, err = pass(dataset.SplitFull, func(title string) (string, error) {
		return c.Page(ctx, title)
	})
	return ev, err
}

func (c *Client) wait(ctx context.Context) error {
	if c.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

var blockTags = map[string]bool{
	"p": true, "li": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// stripHTML flattens an HTML fragment to its text, keeping paragraph breaks.
func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && blockTags[n.Data] {
			buf.WriteString("\n")
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
