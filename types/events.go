package types

import "time"

// Subscription command actions
const (
	SubscriptionAdd    = "add"
	SubscriptionRemove = "remove"
)

// SubscriptionCommand is consumed from Kafka to add or remove a feed
type SubscriptionCommand struct {
	Action string `json:"action"`
	URL    string `json:"url"`
}

// RefreshEvent is published after every completed refresh
type RefreshEvent struct {
	RunID        string    `json:"run_id"`
	RefreshedAt  time.Time `json:"refreshed_at"`
	FeedCount    int       `json:"feed_count"`
	ArticleCount int       `json:"article_count"`
	UnseenCount  int       `json:"unseen_count"`
}
