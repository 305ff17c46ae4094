package library

import (
	"context"
	"fmt"
	"log"

	"lipu/orchestrator"
	"lipu/types"

	"github.com/google/uuid"
)

// Refresh fetches every subscribed feed and replaces the article list with the
// merged, recency-ordered result. It waits for a refresh already in progress.
// Articles of feeds that failed this time are kept as they were. Feed failures
// never fail a refresh; the returned error only reports that the new state
// could not be saved.
func (l *Library) Refresh(ctx context.Context) (types.RefreshEvent, error) {
	l.refreshMu.Lock()
	defer l.refreshMu.Unlock()
	return l.refreshLocked(ctx)
}

// TryRefresh is Refresh that returns ErrRefreshRunning instead of waiting.
func (l *Library) TryRefresh(ctx context.Context) (types.RefreshEvent, error) {
	if !l.refreshMu.TryLock() {
		return types.RefreshEvent{}, ErrRefreshRunning
	}
	defer l.refreshMu.Unlock()
	return l.refreshLocked(ctx)
}

// refreshLocked runs one refresh (must hold refreshMu)
func (l *Library) refreshLocked(ctx context.Context) (types.RefreshEvent, error) {
	runID := uuid.NewString()

	l.mu.Lock()
	l.state = types.StateRefreshing
	l.lastErr = nil
	o := orchestrator.New(l.fetcher)
	for _, f := range l.feeds {
		o = o.WithFeed(f)
	}
	if l.articles != nil {
		o = o.WithPrevious(l.articles)
	}
	l.addLogLocked(fmt.Sprintf("Refresh %s started for %d feed(s)", runID, len(l.feeds)))
	l.mu.Unlock()

	log.Printf("=== Refresh %s ===", runID)
	res := o.Run(ctx)

	refreshed := map[string]bool{}
	for _, f := range o.Feeds() {
		refreshed[normalizeFeedURL(f)] = true
	}
	for _, f := range res.Failed {
		delete(refreshed, normalizeFeedURL(f))
	}

	l.mu.Lock()
	// Progress set while the fetch was running must not be lost, and feeds
	// removed meanwhile must not come back.
	subscribed := map[string]bool{}
	for _, f := range l.feeds {
		subscribed[normalizeFeedURL(f)] = true
	}
	kept := make([]types.Article, 0, len(res.Articles))
	seen := map[string]bool{}
	for _, a := range res.Articles {
		if a.FeedURL == "" || subscribed[normalizeFeedURL(a.FeedURL)] {
			kept = append(kept, a)
			seen[a.ID] = true
		}
	}
	// feeds that failed (or were added after the run started) keep what they had
	retained := 0
	for _, a := range l.articles {
		feed := normalizeFeedURL(a.FeedURL)
		if a.FeedURL == "" || !subscribed[feed] || refreshed[feed] || seen[a.ID] {
			continue
		}
		kept = append(kept, a)
		seen[a.ID] = true
		retained++
	}
	if l.articles != nil {
		kept = orchestrator.Merge(kept, l.articles)
		carryDownloads(kept, l.articles)
	}
	orchestrator.SortByRecency(kept)

	dropped := map[string]bool{}
	for _, a := range l.articles {
		if !seen[a.ID] {
			dropped[a.ID] = true
		}
	}
	l.untagLocked(dropped)
	l.articles = kept

	event := types.RefreshEvent{
		RunID:        runID,
		RefreshedAt:  l.now().UTC(),
		FeedCount:    len(l.feeds),
		ArticleCount: len(l.articles),
		UnseenCount:  countUnseen(l.articles),
	}
	l.lastRefresh = &event
	l.state = types.StateIdle
	if len(res.Failed) > 0 {
		l.addLogLocked(fmt.Sprintf("Refresh %s: %d feed(s) failed, kept %d earlier article(s)", runID, len(res.Failed), retained))
	}
	l.addLogLocked(fmt.Sprintf("Refresh %s complete: %d article(s), %d unseen", runID, event.ArticleCount, event.UnseenCount))
	l.mu.Unlock()

	// the new state is already live; a caller going away must not stop it being saved
	saveCtx := context.WithoutCancel(ctx)
	if err := l.persist(saveCtx); err != nil {
		l.mu.Lock()
		l.state = types.StateError
		l.lastErr = err
		l.addLogLocked("Error: " + err.Error())
		l.mu.Unlock()
		return event, err
	}

	if l.notifier != nil {
		if err := l.notifier.RefreshCompleted(saveCtx, event); err != nil {
			log.Printf("⚠️  Failed to publish refresh event %s: %v", runID, err)
		}
	}
	return event, nil
}

// carryDownloads keeps the downloaded flag of media that is still at the same URL.
func carryDownloads(fresh, previous []types.Article) {
	downloaded := map[string]string{}
	for _, p := range previous {
		if m, ok := types.MediaOf(p.Body); ok && m.Downloaded {
			if _, seen := downloaded[p.ID]; !seen {
				downloaded[p.ID] = m.URL
			}
		}
	}
	for i, a := range fresh {
		m, ok := types.MediaOf(a.Body)
		if ok && downloaded[a.ID] == m.URL {
			m.Downloaded = true
			fresh[i].Body = types.WithMedia(a.Body, m)
		}
	}
}
