package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"lipu/library"
	"lipu/rssfeeds"
	"lipu/storage"
	"lipu/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test blog</title>
  <item>
    <title>Older post</title>
    <guid>post-1</guid>
    <link>https://blog.example.com/1</link>
    <description>&lt;p&gt;Hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</description>
    <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Newer episode</title>
    <guid>ep-2</guid>
    <description>Show notes</description>
    <pubDate>Wed, 03 Jan 2024 10:00:00 +0000</pubDate>
    <enclosure url="https://cdn.example.com/ep2.mp3" length="100" type="audio/mpeg"/>
  </item>
</channel>
</rss>`

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	t       *testing.T
	router  *gin.Engine
	feedURL string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	feeds := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	t.Cleanup(feeds.Close)

	lib := library.New(library.Options{
		Fetcher:    rssfeeds.NewFetcher(0),
		Store:      storage.NewMemoryStore(),
		Downloader: library.NewDownloader(t.TempDir(), nil),
	})
	require.NoError(t, lib.Open(context.Background()))
	return &harness{t: t, router: NewRouter(lib), feedURL: feeds.URL + "/feed.xml"}
}

func (h *harness) do(method, path string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type articlesResponse struct {
	Articles []types.ArticleView `json:"articles"`
}

func (h *harness) subscribeAndRefresh() []types.ArticleView {
	h.t.Helper()
	w := h.do(http.MethodPost, "/api/feeds", gin.H{"url": h.feedURL})
	require.Equal(h.t, http.StatusCreated, w.Code, w.Body.String())

	w = h.do(http.MethodPost, "/api/rss/refresh", nil)
	require.Equal(h.t, http.StatusOK, w.Code, w.Body.String())
	return decode[articlesResponse](h.t, w).Articles
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestFeedsEndpoints(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/feeds", gin.H{"preset": "golang"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://go.dev/blog/feed.atom", decode[map[string]any](t, w)["url"])

	w = h.do(http.MethodPost, "/api/feeds", gin.H{"mastodon": gin.H{"instance": "hachyderm.io", "user": "@gopher"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = h.do(http.MethodPost, "/api/feeds", gin.H{"youtube_channel": "UCxyz"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = h.do(http.MethodPost, "/api/feeds", gin.H{"url": "mailto:someone@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/feeds", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodGet, "/api/feeds", nil)
	require.Equal(t, http.StatusOK, w.Code)
	feeds := decode[struct {
		Feeds []string `json:"feeds"`
	}](t, w).Feeds
	assert.Equal(t, []string{
		"https://go.dev/blog/feed.atom",
		"https://hachyderm.io/@gopher.rss",
		"https://www.youtube.com/feeds/videos.xml?channel_id=UCxyz",
	}, feeds)

	w = h.do(http.MethodDelete, "/api/feeds?url="+url.QueryEscape("https://go.dev/blog/feed.atom"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/api/feeds?url="+url.QueryEscape("https://go.dev/blog/feed.atom"), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodDelete, "/api/feeds", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshAndArticles(t *testing.T) {
	h := newHarness(t)
	articles := h.subscribeAndRefresh()

	require.Len(t, articles, 2)
	assert.Equal(t, "ep-2", articles[0].Article.ID)
	assert.Equal(t, "new Newer episode (audio)", articles[0].Display)
	assert.Equal(t, "new Older post (article)", articles[1].Display)

	w := h.do(http.MethodGet, "/api/articles?q=show+NOTES", nil)
	require.Equal(t, http.StatusOK, w.Code)
	found := decode[articlesResponse](t, w).Articles
	require.Len(t, found, 1)
	assert.Equal(t, "ep-2", found[0].Article.ID)

	w = h.do(http.MethodGet, "/api/articles/post-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[types.ArticleView](t, w)
	assert.Equal(t, types.KindText, view.Article.Body.Kind())
	assert.Equal(t, []string{}, view.Tags)

	w = h.do(http.MethodGet, "/api/articles/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, "/api/articles/post-1/text", nil)
	require.Equal(t, http.StatusOK, w.Code)
	text := decode[map[string]string](t, w)["text"]
	assert.Contains(t, text, "Hello")
	assert.NotContains(t, text, "<b>")

	w = h.do(http.MethodGet, "/api/articles/ep-2/text", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressEndpoint(t *testing.T) {
	h := newHarness(t)
	h.subscribeAndRefresh()

	w := h.do(http.MethodPut, "/api/articles/ep-2/progress", gin.H{"kind": "until_second", "n": 42})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[types.ArticleView](t, w)
	assert.Equal(t, "partial Newer episode (audio)", view.Display)
	assert.True(t, view.Article.Viewed.Equal(types.UntilSecond(42)))

	w = h.do(http.MethodPut, "/api/articles/post-1/progress", gin.H{"kind": "fully"})
	require.Equal(t, http.StatusOK, w.Code)

	// progress survives the next refresh
	w = h.do(http.MethodPost, "/api/rss/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	articles := decode[articlesResponse](t, w).Articles
	require.Len(t, articles, 2)
	assert.Equal(t, "partial Newer episode (audio)", articles[0].Display)
	assert.Equal(t, "viewed Older post (article)", articles[1].Display)

	w = h.do(http.MethodPut, "/api/articles/post-1/progress", gin.H{"kind": "halfway"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPut, "/api/articles/missing/progress", gin.H{"kind": "fully"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagEndpoints(t *testing.T) {
	h := newHarness(t)
	h.subscribeAndRefresh()

	w := h.do(http.MethodPost, "/api/articles/ep-2/tags", gin.H{"tag": "commute"})
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodPost, "/api/articles/post-1/tags", gin.H{"tag": "commute"})
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodPost, "/api/articles/post-1/tags", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = h.do(http.MethodPost, "/api/articles/missing/tags", gin.H{"tag": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodGet, "/api/articles?tag=commute", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[articlesResponse](t, w).Articles, 2)

	w = h.do(http.MethodDelete, "/api/articles/ep-2/tags/commute", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodGet, "/api/articles?tag=commute", nil)
	require.Equal(t, http.StatusOK, w.Code)
	tagged := decode[articlesResponse](t, w).Articles
	require.Len(t, tagged, 1)
	assert.Equal(t, []string{"commute"}, tagged[0].Tags)

	w = h.do(http.MethodGet, "/api/tags", nil)
	assert.JSONEq(t, `{"tags":["commute"]}`, w.Body.String())

	w = h.do(http.MethodDelete, "/api/tags/commute", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = h.do(http.MethodDelete, "/api/tags/commute", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodGet, "/api/articles?tag=commute", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadTextIsRejected(t *testing.T) {
	h := newHarness(t)
	h.subscribeAndRefresh()

	w := h.do(http.MethodPost, "/api/articles/post-1/download", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	h := newHarness(t)
	h.subscribeAndRefresh()

	w := h.do(http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[types.StatusResponse](t, w)
	assert.Equal(t, types.StateIdle, status.State)
	assert.Equal(t, 1, status.FeedCount)
	assert.Equal(t, 2, status.ArticleCount)
	assert.Equal(t, 2, status.UnseenCount)
	require.NotNil(t, status.LastRefresh)
	assert.NotEmpty(t, status.LastRefresh.RunID)
	assert.NotEmpty(t, status.Logs)
}

func TestRefreshWhileRunningIsConflict(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	feeds := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		_, _ = w.Write([]byte(testFeed))
	}))
	t.Cleanup(feeds.Close)
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	lib := library.New(library.Options{Fetcher: rssfeeds.NewFetcher(0), Store: storage.NewMemoryStore()})
	_, err := lib.AddFeed(context.Background(), feeds.URL+"/feed.xml")
	require.NoError(t, err)
	h := &harness{t: t, router: NewRouter(lib)}

	first := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/rss/refresh", nil)
		w := httptest.NewRecorder()
		h.router.ServeHTTP(w, req)
		first <- w.Code
	}()
	<-started

	w := h.do(http.MethodPost, "/api/rss/refresh", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "refresh already running")

	unblock()
	assert.Equal(t, http.StatusOK, <-first)
	assert.Len(t, lib.List(), 2)
}
