package tui

import (
	"time"

	"lipu/types"

	tea "github.com/charmbracelet/bubbletea"
)

const pollInterval = 2 * time.Second

func loadArticles(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		articles, err := client.ListArticles()
		return ArticlesLoadedMsg{Articles: articles, Err: err}
	}
}

func refreshArticles(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		articles, err := client.Refresh()
		return ArticlesLoadedMsg{Articles: articles, Refreshed: true, Err: err}
	}
}

func setProgress(client *APIClient, id string, p types.Progress) tea.Cmd {
	return func() tea.Msg {
		view, err := client.SetProgress(id, p)
		return ProgressSetMsg{View: view, Err: err}
	}
}

func loadText(client *APIClient, id, name string) tea.Cmd {
	return func() tea.Msg {
		text, err := client.GetText(id)
		return TextLoadedMsg{Name: name, Text: text, Err: err}
	}
}

func pollStatus(client *APIClient) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetStatus()
		return StatusUpdateMsg{Status: status, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
