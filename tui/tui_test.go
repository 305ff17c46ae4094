package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lipu/render"
	"lipu/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func view(id, name string, body types.Body, p types.Progress) types.ArticleView {
	a := types.Article{ID: id, Name: name, Body: body, Viewed: p}
	return types.ArticleView{Article: a, Display: render.Line(a), Tags: []string{}}
}

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/articles/a/progress", func(w http.ResponseWriter, r *http.Request) {
		var p types.Progress
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		_ = json.NewEncoder(w).Encode(view("a", "Post", types.Text{Content: "x"}, p))
	})
	mux.HandleFunc("/api/articles/a/text", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "Hello reader"})
	})
	mux.HandleFunc("/api/rss/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(articlesResponse{Articles: []types.ArticleView{
			view("a", "Post", types.Text{Content: "x"}, types.Unseen()),
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key(k))
	return next.(Model), cmd
}

func loaded(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestCursorMovement(t *testing.T) {
	m := NewModel("http://unused")
	m = loaded(t, m, ArticlesLoadedMsg{Articles: []types.ArticleView{
		view("a", "One", types.Text{}, types.Unseen()),
		view("b", "Two", types.Text{}, types.Unseen()),
	}})

	m, _ = press(t, m, "k")
	assert.Equal(t, 0, m.Cursor)
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "j")
	assert.Equal(t, 1, m.Cursor)

	// a shorter list pulls the cursor back in range
	m = loaded(t, m, ArticlesLoadedMsg{Articles: []types.ArticleView{view("a", "One", types.Text{}, types.Unseen())}})
	assert.Equal(t, 0, m.Cursor)
}

func TestMarkFullyViewed(t *testing.T) {
	srv := fakeServer(t)
	m := NewModel(srv.URL)
	m = loaded(t, m, ArticlesLoadedMsg{Articles: []types.ArticleView{view("a", "Post", types.Text{Content: "x"}, types.Unseen())}})

	m, cmd := press(t, m, "f")
	require.NotNil(t, cmd)
	m = loaded(t, m, cmd())

	require.NoError(t, m.Err)
	assert.True(t, m.Articles[0].Article.Viewed.IsFully())
	assert.Contains(t, m.View(), "viewed Post (article)")
}

func TestPreviewText(t *testing.T) {
	srv := fakeServer(t)
	m := NewModel(srv.URL)
	m = loaded(t, m, ArticlesLoadedMsg{Articles: []types.ArticleView{
		view("a", "Post", types.Text{Content: "x"}, types.Unseen()),
		view("v", "Clip", types.Video{Media: types.MediaLink{URL: "https://x/v.mp4", MimeType: "video/mp4"}}, types.Unseen()),
	}})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	m = loaded(t, m, cmd())
	assert.Equal(t, "Hello reader", m.Preview)
	assert.Contains(t, m.View(), "Hello reader")

	m, _ = press(t, m, "q")
	assert.Empty(t, m.Preview)

	m, _ = press(t, m, "j")
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, TextNoPreview, m.Notice)
}

func TestRefreshKey(t *testing.T) {
	srv := fakeServer(t)
	m := NewModel(srv.URL)

	m, cmd := press(t, m, "r")
	require.NotNil(t, cmd)
	assert.True(t, m.Busy)

	_, again := press(t, m, "r")
	assert.Nil(t, again)

	m = loaded(t, m, cmd())
	assert.False(t, m.Busy)
	require.Len(t, m.Articles, 1)
	assert.True(t, strings.HasPrefix(m.Notice, "Refreshed"))
}

func TestDisconnectedView(t *testing.T) {
	m := loaded(t, NewModel("http://unused"), StatusUpdateMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), TextDisconnected)
}
