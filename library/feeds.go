package library

import (
	"context"
	"fmt"

	"lipu/rssfeeds"
	"lipu/types"
)

// Feeds returns the subscribed feed URLs in refresh order.
func (l *Library) Feeds() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.feeds...)
}

// AddFeed subscribes to a feed URL or preset name and returns the resolved URL.
// Subscribing twice to the same feed is a no-op. Invalid URLs wrap
// ErrInvalidFeed; a subscription that cannot be saved is not kept.
func (l *Library) AddFeed(ctx context.Context, feed string) (string, error) {
	feedURL := rssfeeds.ResolveFeedURL(feed)
	if err := rssfeeds.ValidateFeedURL(feedURL); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	l.mu.Lock()
	if l.findFeedLocked(feedURL) >= 0 {
		l.mu.Unlock()
		return feedURL, nil
	}
	l.feeds = append(l.feeds, feedURL)
	l.addLogLocked("Subscribed to " + feedURL)
	l.mu.Unlock()

	if err := l.persist(ctx); err != nil {
		// undo so that retrying the same subscription saves it
		l.mu.Lock()
		if i := l.findFeedLocked(feedURL); i >= 0 {
			l.feeds = append(l.feeds[:i:i], l.feeds[i+1:]...)
		}
		l.addLogLocked("Error: subscription to " + feedURL + " not saved")
		l.mu.Unlock()
		return "", fmt.Errorf("failed to save subscription to %s: %w", feedURL, err)
	}
	return feedURL, nil
}

// AddMastodonFeed subscribes to the public posts of user on instance.
func (l *Library) AddMastodonFeed(ctx context.Context, instance, user string) (string, error) {
	feedURL, err := rssfeeds.MastodonFeedURL(instance, user)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	return l.AddFeed(ctx, feedURL)
}

// AddYouTubeChannel subscribes to the uploads of a YouTube channel.
func (l *Library) AddYouTubeChannel(ctx context.Context, channelID string) (string, error) {
	feedURL, err := rssfeeds.YouTubeChannelFeedURL(channelID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}
	return l.AddFeed(ctx, feedURL)
}

// RemoveFeed unsubscribes and drops the feed's articles along with their tags.
func (l *Library) RemoveFeed(ctx context.Context, feed string) error {
	feedURL := rssfeeds.ResolveFeedURL(feed)

	l.mu.Lock()
	i := l.findFeedLocked(feedURL)
	if i < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrFeedNotFound, feedURL)
	}
	removed := l.feeds[i]
	l.feeds = append(l.feeds[:i:i], l.feeds[i+1:]...)

	key := normalizeFeedURL(removed)
	kept := make([]types.Article, 0, len(l.articles))
	dropped := map[string]bool{}
	for _, a := range l.articles {
		if normalizeFeedURL(a.FeedURL) == key {
			dropped[a.ID] = true
			continue
		}
		kept = append(kept, a)
	}
	l.articles = kept
	l.untagLocked(dropped)
	l.addLogLocked(fmt.Sprintf("Unsubscribed from %s (%d article(s) dropped)", removed, len(dropped)))
	l.mu.Unlock()

	return l.persist(ctx)
}

func (l *Library) findFeedLocked(feedURL string) int {
	key := normalizeFeedURL(feedURL)
	for i, f := range l.feeds {
		if normalizeFeedURL(f) == key {
			return i
		}
	}
	return -1
}
