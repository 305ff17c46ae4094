package kafka

import (
	"context"
	"errors"
	"log"
	"strings"

	"lipu/library"
	"lipu/types"
)

// Subscriptions is the part of the library subscription commands act on.
type Subscriptions interface {
	AddFeed(ctx context.Context, feed string) (string, error)
	RemoveFeed(ctx context.Context, feed string) error
}

// NewSubscriptionHandler applies add/remove commands to subs. Malformed
// commands and commands that can never succeed are marked and dropped.
func NewSubscriptionHandler(subs Subscriptions) *TypedMessageHandler[types.SubscriptionCommand] {
	return &TypedMessageHandler[types.SubscriptionCommand]{
		AlwaysMark: true,
		Validate: func(cmd *types.SubscriptionCommand) bool {
			cmd.Action = strings.ToLower(strings.TrimSpace(cmd.Action))
			cmd.URL = strings.TrimSpace(cmd.URL)
			if cmd.URL == "" {
				log.Printf("⚠️  Ignoring subscription command without url")
				return false
			}
			if cmd.Action != types.SubscriptionAdd && cmd.Action != types.SubscriptionRemove {
				log.Printf("⚠️  Ignoring unknown subscription action %q", cmd.Action)
				return false
			}
			return true
		},
		Process: func(ctx context.Context, cmd *types.SubscriptionCommand) error {
			switch cmd.Action {
			case types.SubscriptionAdd:
				feedURL, err := subs.AddFeed(ctx, cmd.URL)
				if errors.Is(err, library.ErrInvalidFeed) {
					log.Printf("⚠️  Rejected subscription to %s: %v", cmd.URL, err)
					return nil
				}
				if err != nil {
					return err
				}
				log.Printf("✅ Subscribed to %s via Kafka", feedURL)
			case types.SubscriptionRemove:
				err := subs.RemoveFeed(ctx, cmd.URL)
				if errors.Is(err, library.ErrFeedNotFound) {
					log.Printf("⚠️  Not subscribed to %s, nothing to remove", cmd.URL)
					return nil
				}
				if err != nil {
					return err
				}
				log.Printf("✅ Unsubscribed from %s via Kafka", cmd.URL)
			}
			return nil
		},
	}
}
