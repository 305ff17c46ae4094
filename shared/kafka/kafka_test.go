package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"lipu/library"
	"lipu/types"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerPublishesRefreshEvent(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	event := types.RefreshEvent{
		RunID:        "run-1",
		RefreshedAt:  time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC),
		FeedCount:    2,
		ArticleCount: 10,
		UnseenCount:  4,
	}

	mock.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got types.RefreshEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.RunID != event.RunID || got.UnseenCount != 4 || got.ArticleCount != 10 {
			return fmt.Errorf("unexpected event %+v", got)
		}
		return nil
	})

	p := NewProducerFromSync(mock, "lipu.refreshes")
	require.NoError(t, p.RefreshCompleted(context.Background(), event))
	require.NoError(t, p.Close())
}

func TestProducerSendFailure(t *testing.T) {
	mock := mocks.NewSyncProducer(t, nil)
	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewProducerFromSync(mock, "lipu.refreshes")
	err := p.RefreshCompleted(context.Background(), types.RefreshEvent{RunID: "run-2"})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

type fakeSubscriptions struct {
	added     []string
	removed   []string
	addErr    error
	removeErr error
}

func (f *fakeSubscriptions) AddFeed(ctx context.Context, feed string) (string, error) {
	if f.addErr != nil {
		return "", f.addErr
	}
	f.added = append(f.added, feed)
	return feed, nil
}

func (f *fakeSubscriptions) RemoveFeed(ctx context.Context, feed string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, feed)
	return nil
}

func TestSubscriptionHandler(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		subs        *fakeSubscriptions
		wantMark    bool
		wantErr     bool
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:      "add",
			message:   `{"action":"add","url":" https://example.com/feed "}`,
			subs:      &fakeSubscriptions{},
			wantMark:  true,
			wantAdded: []string{"https://example.com/feed"},
		},
		{
			name:        "remove is case insensitive",
			message:     `{"action":"REMOVE","url":"https://example.com/feed"}`,
			subs:        &fakeSubscriptions{},
			wantMark:    true,
			wantRemoved: []string{"https://example.com/feed"},
		},
		{
			name:     "invalid json is dropped",
			message:  `{"action":`,
			subs:     &fakeSubscriptions{},
			wantMark: true,
		},
		{
			name:     "unknown action is dropped",
			message:  `{"action":"pause","url":"https://example.com/feed"}`,
			subs:     &fakeSubscriptions{},
			wantMark: true,
		},
		{
			name:     "missing url is dropped",
			message:  `{"action":"add"}`,
			subs:     &fakeSubscriptions{},
			wantMark: true,
		},
		{
			name:     "rejected feed url is dropped",
			message:  `{"action":"add","url":"ftp://example.com"}`,
			subs:     &fakeSubscriptions{addErr: fmt.Errorf("%w: unsupported scheme: ftp", library.ErrInvalidFeed)},
			wantMark: true,
		},
		{
			name:     "unsaved subscription is retried",
			message:  `{"action":"add","url":"https://example.com/feed"}`,
			subs:     &fakeSubscriptions{addErr: errors.New("redis down")},
			wantMark: false,
			wantErr:  true,
		},
		{
			name:     "removing an unknown feed is done",
			message:  `{"action":"remove","url":"https://example.com/feed"}`,
			subs:     &fakeSubscriptions{removeErr: fmt.Errorf("%w: x", library.ErrFeedNotFound)},
			wantMark: true,
		},
		{
			name:     "store failure is retried",
			message:  `{"action":"remove","url":"https://example.com/feed"}`,
			subs:     &fakeSubscriptions{removeErr: errors.New("redis down")},
			wantMark: false,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSubscriptionHandler(tt.subs)
			mark, err := h.HandleMessage(context.Background(), []byte(tt.message))
			assert.Equal(t, tt.wantMark, mark)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAdded, tt.subs.added)
			assert.Equal(t, tt.wantRemoved, tt.subs.removed)
		})
	}
}
