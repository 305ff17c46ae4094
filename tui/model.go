package tui

import (
	"lipu/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the reader's UI state. All data lives on the server.
type Model struct {
	Client *APIClient

	Articles []types.ArticleView
	Cursor   int
	Status   *types.StatusResponse

	// Preview is non-empty while a text article is open
	Preview     string
	PreviewName string

	Busy      bool
	Connected bool
	Notice    string
	Err       error

	Height int
}

// NewModel creates a new TUI model
func NewModel(serverURL string) Model {
	return Model{Client: NewAPIClient(serverURL)}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadArticles(m.Client),
		pollStatus(m.Client),
		tickCmd(),
	)
}

// selected returns the article under the cursor
func (m Model) selected() (types.ArticleView, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Articles) {
		return types.ArticleView{}, false
	}
	return m.Articles[m.Cursor], true
}

func (m Model) clampCursor() Model {
	if m.Cursor >= len(m.Articles) {
		m.Cursor = len(m.Articles) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}
