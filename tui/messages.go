package tui

import (
	"time"

	"lipu/types"
)

// Messages for the tea program

// ArticlesLoadedMsg carries a fresh article list, from a listing or a refresh
type ArticlesLoadedMsg struct {
	Articles  []types.ArticleView
	Refreshed bool
	Err       error
}

// ProgressSetMsg is sent when the server accepted a progress change
type ProgressSetMsg struct {
	View *types.ArticleView
	Err  error
}

// TextLoadedMsg carries the preview of a text article
type TextLoadedMsg struct {
	Name string
	Text string
	Err  error
}

// StatusUpdateMsg is sent when we receive status from the server
type StatusUpdateMsg struct {
	Status *types.StatusResponse
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
