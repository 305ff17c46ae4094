package orchestrator

import (
	"context"
	"log"

	"lipu/types"
)

// FeedFetcher turns one feed URL into classified articles.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]types.Article, error)
}

// Result is the outcome of one aggregation cycle. Failed lists the feeds that
// contributed nothing because they could not be fetched, in refresh order.
type Result struct {
	Articles []types.Article
	Failed   []string
}

// Refresh executes a single aggregation cycle: fetch every feed in order, skip the
// ones that fail, carry progress over from previous, sort newest first.
// It never fails; feed failures are logged and contribute nothing.
func Refresh(ctx context.Context, fetcher FeedFetcher, urls []string, previous []types.Article) []types.Article {
	return Run(ctx, fetcher, urls, previous).Articles
}

// Run is Refresh that also reports which feeds failed.
func Run(ctx context.Context, fetcher FeedFetcher, urls []string, previous []types.Article) Result {
	log.Printf("Refreshing %d feed(s)", len(urls))

	var collected []types.Article
	var failed []string
	for i, u := range urls {
		articles, err := fetcher.Fetch(ctx, u)
		if err != nil {
			failed = append(failed, u)
			log.Printf("  [%d/%d] ❌ Feed %s failed: %v", i+1, len(urls), u, err)
			continue
		}
		log.Printf("  [%d/%d] ✅ Feed %s: %d article(s)", i+1, len(urls), u, len(articles))
		collected = append(collected, articles...)
	}

	merged := Merge(collected, previous)
	if merged == nil {
		merged = []types.Article{}
	}
	SortByRecency(merged)

	log.Printf("Refresh complete: %d article(s), %d/%d feed(s) failed", len(merged), len(failed), len(urls))
	return Result{Articles: merged, Failed: failed}
}

// Orchestrator is an immutable refresh configuration. The With* methods return
// modified copies and never touch the receiver.
type Orchestrator struct {
	fetcher  FeedFetcher
	feeds    []string
	previous []types.Article
}

// New creates an orchestrator with no feeds and no previous snapshot.
func New(fetcher FeedFetcher) Orchestrator {
	return Orchestrator{fetcher: fetcher}
}

// WithFeed returns a copy that also refreshes feedURL.
func (o Orchestrator) WithFeed(feedURL string) Orchestrator {
	feeds := make([]string, len(o.feeds), len(o.feeds)+1)
	copy(feeds, o.feeds)
	o.feeds = append(feeds, feedURL)
	return o
}

// WithPrevious returns a copy that merges progress from previous. A nil slice
// means there is no previous snapshot.
func (o Orchestrator) WithPrevious(previous []types.Article) Orchestrator {
	if previous == nil {
		o.previous = nil
		return o
	}
	o.previous = append([]types.Article(nil), previous...)
	if o.previous == nil {
		o.previous = []types.Article{}
	}
	return o
}

// Feeds returns the configured feed URLs in refresh order.
func (o Orchestrator) Feeds() []string {
	return append([]string(nil), o.feeds...)
}

// Refresh runs one cycle with this configuration.
func (o Orchestrator) Refresh(ctx context.Context) []types.Article {
	return Refresh(ctx, o.fetcher, o.feeds, o.previous)
}

// Run runs one cycle and reports failed feeds alongside the articles.
func (o Orchestrator) Run(ctx context.Context) Result {
	return Run(ctx, o.fetcher, o.feeds, o.previous)
}
