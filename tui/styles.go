package tui

import (
	"lipu/render"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
const (
	colorPrimary = "#7D56F4"
	colorSuccess = "#04B575"
	colorError   = "#FF0000"
	colorInfo    = "#626262"
	colorPartial = "#E5C07B"
	colorBright  = "#FAFAFA"
	colorBorder  = "#874BFD"
)

// Styles for the TUI application
var (
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	InfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	CursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorBright)).
		Background(lipgloss.Color(colorPrimary))

	NewStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorSuccess))

	PartialStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorPartial))

	ViewedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		Padding(1, 2)
)

// styleFor picks the line style for a status tag.
func styleFor(status string) lipgloss.Style {
	switch status {
	case render.StatusNew:
		return NewStyle
	case render.StatusPartial:
		return PartialStyle
	default:
		return ViewedStyle
	}
}
