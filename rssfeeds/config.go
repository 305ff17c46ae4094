package rssfeeds

import (
	"fmt"
	"net/url"
	"strings"
)

// FeedConfig represents a named feed subscription
type FeedConfig struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// FeedPresets maps friendly keys to feed configurations
var FeedPresets = map[string]FeedConfig{
	"hn": {
		Name: "Hacker News",
		URL:  "https://hnrss.org/newest",
	},
	"tr": {
		Name: "Technology Review",
		URL:  "https://www.technologyreview.com/feed/",
	},
	"gotime": {
		Name: "Go Time (podcast)",
		URL:  "https://changelog.com/gotime/feed",
	},
	"golang": {
		Name: "The Go Blog",
		URL:  "https://go.dev/blog/feed.atom",
	},
}

// ResolveFeedURL resolves a feed identifier to a URL.
// If the input is a preset name, returns the corresponding URL.
// Otherwise, returns the input as-is (assuming it's a direct URL).
func ResolveFeedURL(feedInput string) string {
	if preset, exists := FeedPresets[strings.TrimSpace(feedInput)]; exists {
		return preset.URL
	}
	return strings.TrimSpace(feedInput)
}

// ValidateFeedURL accepts absolute http and https URLs only.
func ValidateFeedURL(feedURL string) error {
	u, err := url.ParseRequestURI(feedURL)
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("feed URL %q has no host", feedURL)
	}
	return nil
}

// MastodonFeedURL returns the public RSS feed of a Mastodon account.
func MastodonFeedURL(instance, user string) (string, error) {
	instance = strings.TrimSpace(instance)
	if strings.Contains(instance, "://") {
		u, err := url.Parse(instance)
		if err != nil {
			return "", fmt.Errorf("invalid instance %q: %w", instance, err)
		}
		instance = u.Host
	}
	instance = strings.TrimSuffix(instance, "/")
	user = strings.TrimPrefix(strings.TrimSpace(user), "@")
	if instance == "" || user == "" {
		return "", fmt.Errorf("both instance and user are required")
	}
	return fmt.Sprintf("https://%s/@%s.rss", instance, url.PathEscape(user)), nil
}

// YouTubeChannelFeedURL returns the Atom feed of a YouTube channel.
func YouTubeChannelFeedURL(channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return "", fmt.Errorf("channel id is required")
	}
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + url.QueryEscape(channelID), nil
}
