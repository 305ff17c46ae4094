package rssfeeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"lipu/types"

	"github.com/mmcdole/gofeed"
)

const (
	defaultFetchTimeout = 30 * time.Second
	userAgent           = "lipu/1.0 (+feed reader)"
)

// FeedErrorKind says which stage of a feed fetch failed
type FeedErrorKind int

const (
	Network FeedErrorKind = iota
	ResponseProcessing
	FeedParsing
)

func (k FeedErrorKind) String() string {
	switch k {
	case Network:
		return "network"
	case ResponseProcessing:
		return "response processing"
	case FeedParsing:
		return "feed parsing"
	default:
		return fmt.Sprintf("FeedErrorKind(%d)", int(k))
	}
}

// FeedError is a feed-level failure. It aborts only the contribution of one feed.
type FeedError struct {
	Kind FeedErrorKind
	URL  string
	Err  error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("%s error for %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FeedError) Unwrap() error { return e.Err }

// Fetcher retrieves one feed over HTTP, parses it and classifies its entries.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher whose HTTP client gives up after timeout.
// A zero timeout uses the default of 30 seconds.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return NewFetcherWithClient(&http.Client{Timeout: timeout})
}

func NewFetcherWithClient(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &Fetcher{client: client}
}

// Fetch retrieves and parses a feed, returning the entries that classified
// successfully. Entries that fail classification are logged and skipped.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]types.Article, error) {
	raw, err := f.retrieve(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	// gofeed parsers keep per-parse state, so each fetch gets its own.
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, &FeedError{Kind: FeedParsing, URL: feedURL, Err: err}
	}

	articles := make([]types.Article, 0, len(feed.Items))
	for i, item := range feed.Items {
		article, err := Classify(ToEntry(item))
		if err != nil {
			log.Printf("  [%d/%d] ⚠️  Skipping entry %q from %s: %v", i+1, len(feed.Items), item.Title, feedURL, err)
			continue
		}
		article.FeedURL = feedURL
		articles = append(articles, article)
	}

	log.Printf("Fetched %d/%d entries from %s", len(articles), len(feed.Items), feedURL)
	return articles, nil
}

func (f *Fetcher) retrieve(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, &FeedError{Kind: Network, URL: feedURL, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FeedError{Kind: Network, URL: feedURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &FeedError{Kind: Network, URL: feedURL, Err: fmt.Errorf("server returned %s", resp.Status)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{Kind: ResponseProcessing, URL: feedURL, Err: fmt.Errorf("failed to read body: %w", err)}
	}
	return raw, nil
}
