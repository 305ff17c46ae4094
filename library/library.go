package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"lipu/orchestrator"
	"lipu/storage"
	"lipu/types"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrFeedNotFound    = errors.New("feed not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrNotDownloadable = errors.New("article has no downloadable media")
	ErrInvalidTag      = errors.New("tag must not be empty")
	ErrInvalidFeed     = errors.New("invalid feed")
	ErrRefreshRunning  = errors.New("refresh already running")
)

const maxLogs = 50

// Notifier is told about every completed refresh.
type Notifier interface {
	RefreshCompleted(ctx context.Context, event types.RefreshEvent) error
}

// Options wires a Library to its collaborators. Fetcher and Store are required.
type Options struct {
	Fetcher    orchestrator.FeedFetcher
	Store      storage.SnapshotStore
	Notifier   Notifier
	Downloader *Downloader
}

// Library is the reader state: subscribed feeds, the merged article list and
// tags. It is safe for concurrent use.
type Library struct {
	mu       sync.RWMutex
	feeds    []string
	articles []types.Article
	tags     map[string][]string // tag -> article IDs, in tagging order

	state       types.State
	lastErr     error
	lastRefresh *types.RefreshEvent
	logs        []types.LogEntry

	// refreshMu serialises refreshes; saveMu keeps snapshots landing in order.
	refreshMu sync.Mutex
	saveMu    sync.Mutex

	fetcher    orchestrator.FeedFetcher
	store      storage.SnapshotStore
	notifier   Notifier
	downloader *Downloader
	now        func() time.Time
}

func New(opts Options) *Library {
	store := opts.Store
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return &Library{
		tags:       map[string][]string{},
		state:      types.StateIdle,
		fetcher:    opts.Fetcher,
		store:      store,
		notifier:   opts.Notifier,
		downloader: opts.Downloader,
		now:        time.Now,
	}
}

// Open restores the last saved snapshot. A store with nothing in it is a fresh start.
func (l *Library) Open(ctx context.Context) error {
	snap, err := l.store.Load(ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		log.Println("No saved snapshot, starting with an empty library")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.feeds = append([]string(nil), snap.Feeds...)
	l.articles = snap.Articles
	l.tags = map[string][]string{}
	for tag, ids := range snap.Tags {
		l.tags[tag] = append([]string(nil), ids...)
	}
	l.addLogLocked(fmt.Sprintf("Restored %d feed(s) and %d article(s) saved at %s",
		len(l.feeds), len(l.articles), snap.SavedAt.Format(time.RFC3339)))
	return nil
}

// Status returns a copy of the current state (thread-safe)
func (l *Library) Status() types.StatusResponse {
	l.mu.RLock()
	defer l.mu.RUnlock()

	resp := types.StatusResponse{
		State:        l.state,
		Logs:         append([]types.LogEntry{}, l.logs...),
		FeedCount:    len(l.feeds),
		ArticleCount: len(l.articles),
		UnseenCount:  countUnseen(l.articles),
	}
	if l.lastRefresh != nil {
		ev := *l.lastRefresh
		resp.LastRefresh = &ev
	}
	if l.lastErr != nil {
		resp.Error = l.lastErr.Error()
	}
	return resp
}

// Refreshing reports whether a refresh is in progress.
func (l *Library) Refreshing() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == types.StateRefreshing
}

// addLogLocked appends to the activity ring buffer (must hold mu)
func (l *Library) addLogLocked(message string) {
	l.logs = append(l.logs, types.LogEntry{Timestamp: l.now(), Message: message})
	if len(l.logs) > maxLogs {
		l.logs = l.logs[len(l.logs)-maxLogs:]
	}
}

func (l *Library) snapshotLocked() types.Snapshot {
	tags := make(map[string][]string, len(l.tags))
	for tag, ids := range l.tags {
		tags[tag] = append([]string(nil), ids...)
	}
	return types.Snapshot{
		Feeds:    append([]string(nil), l.feeds...),
		Articles: append([]types.Article(nil), l.articles...),
		Tags:     tags,
		SavedAt:  l.now().UTC(),
	}
}

// persist saves the current state. The snapshot is taken while holding saveMu,
// so a later save always carries at least everything an earlier one did.
func (l *Library) persist(ctx context.Context) error {
	l.saveMu.Lock()
	defer l.saveMu.Unlock()

	l.mu.RLock()
	snap := l.snapshotLocked()
	l.mu.RUnlock()

	if err := l.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (l *Library) indexLocked(id string) int {
	for i := range l.articles {
		if l.articles[i].ID == id {
			return i
		}
	}
	return -1
}

func countUnseen(articles []types.Article) int {
	n := 0
	for _, a := range articles {
		if a.Viewed.IsNone() {
			n++
		}
	}
	return n
}
