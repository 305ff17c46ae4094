package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// UntitledPlaceholder is used as the article name when the entry has no title.
const UntitledPlaceholder = "??"

// Article represents one normalized feed entry
type Article struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	FeedURL     string     `json:"feed_url,omitempty"`
	Link        *string    `json:"link,omitempty"`
	Author      *string    `json:"author,omitempty"`
	Description *string    `json:"description,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
	Updated     *time.Time `json:"updated,omitempty"`
	Viewed      Progress   `json:"viewed"`
	Body        Body       `json:"-"`
}

// Snapshot is the durable state handed back into the merge step on the next run
type Snapshot struct {
	Feeds    []string            `json:"feeds"`
	Articles []Article           `json:"articles"`
	Tags     map[string][]string `json:"tags,omitempty"`
	SavedAt  time.Time           `json:"saved_at"`
}

// GenerateID creates a short, stable ID by hashing the provided input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
