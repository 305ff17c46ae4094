package tui

import (
	"fmt"

	"lipu/types"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height
		return m, nil
	case ArticlesLoadedMsg:
		return m.handleArticlesLoaded(msg)
	case ProgressSetMsg:
		return m.handleProgressSet(msg)
	case TextLoadedMsg:
		return m.handleTextLoaded(msg)
	case StatusUpdateMsg:
		if msg.Err != nil {
			m.Connected = false
			return m, nil
		}
		m.Connected = true
		m.Status = msg.Status
		return m, nil
	case TickMsg:
		return m, tea.Batch(pollStatus(m.Client), tickCmd())
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Preview != "" {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q", "esc", "enter":
			m.Preview, m.PreviewName = "", ""
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		if m.Cursor < len(m.Articles)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "r":
		if m.Busy {
			return m, nil
		}
		m.Busy = true
		m.Notice = TextRefreshing
		return m, refreshArticles(m.Client)
	case "f":
		if a, ok := m.selected(); ok {
			return m, setProgress(m.Client, a.Article.ID, types.Fully())
		}
	case "u":
		if a, ok := m.selected(); ok {
			return m, setProgress(m.Client, a.Article.ID, types.Unseen())
		}
	case "enter":
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		if _, isText := a.Article.Body.(types.Text); !isText {
			m.Notice = TextNoPreview
			return m, nil
		}
		return m, loadText(m.Client, a.Article.ID, a.Article.Name)
	}
	return m, nil
}

func (m Model) handleArticlesLoaded(msg ArticlesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Refreshed {
		m.Busy = false
	}
	if msg.Err != nil {
		m.Err = msg.Err
		m.Notice = ""
		return m, nil
	}
	m.Err = nil
	m.Connected = true
	m.Articles = msg.Articles
	if msg.Refreshed {
		m.Notice = fmt.Sprintf("Refreshed: %d article(s)", len(msg.Articles))
	}
	return m.clampCursor(), nil
}

// handleProgressSet swaps in the updated article wherever it is in the list
func (m Model) handleProgressSet(msg ProgressSetMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Err = nil
	articles := make([]types.ArticleView, len(m.Articles))
	copy(articles, m.Articles)
	for i := range articles {
		if articles[i].Article.ID == msg.View.Article.ID {
			articles[i] = *msg.View
		}
	}
	m.Articles = articles
	return m, nil
}

func (m Model) handleTextLoaded(msg TextLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Err = nil
	m.PreviewName = msg.Name
	m.Preview = msg.Text
	if m.Preview == "" {
		m.Preview = TextEmptyPreview
	}
	return m, nil
}
