package types

import "time"

// State is what the library is doing right now
type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
	StateError      State = "error"
)

// LogEntry represents a single activity line with timestamp
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// StatusResponse is the JSON response for GET /api/status
type StatusResponse struct {
	State        State         `json:"state"`
	Logs         []LogEntry    `json:"logs"`
	FeedCount    int           `json:"feed_count"`
	ArticleCount int           `json:"article_count"`
	UnseenCount  int           `json:"unseen_count"`
	LastRefresh  *RefreshEvent `json:"last_refresh,omitempty"`
	Error        string        `json:"error,omitempty"`
}
