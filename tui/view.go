package tui

import (
	"fmt"
	"strings"

	"lipu/render"
)

const defaultListHeight = 20

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	if m.Preview != "" {
		b.WriteString(BoxStyle.Render(m.PreviewName + "\n\n" + m.Preview))
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render(TextFooterPreview))
		return b.String()
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	if len(m.Articles) == 0 {
		b.WriteString(InfoStyle.Render(TextNoArticles))
		b.WriteString("\n")
	}
	start, end := m.window()
	for i := start; i < end; i++ {
		a := m.Articles[i]
		line := render.Line(a.Article)
		if len(a.Tags) > 0 {
			line += " [" + strings.Join(a.Tags, ", ") + "]"
		}
		if i == m.Cursor {
			b.WriteString(CursorStyle.Render("> " + line))
		} else {
			b.WriteString(styleFor(render.StatusTag(a.Article.Viewed)).Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", m.Err)))
		b.WriteString("\n")
	} else if m.Notice != "" {
		b.WriteString(InfoStyle.Render(m.Notice))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render(TextFooterList))
	return b.String()
}

func (m Model) statusLine() string {
	if !m.Connected {
		return ErrorStyle.Render(TextDisconnected)
	}
	if m.Status == nil {
		return InfoStyle.Render(fmt.Sprintf("📊 %d article(s)", len(m.Articles)))
	}
	line := fmt.Sprintf("📊 %d feed(s) | %d article(s) | %d unseen | %s",
		m.Status.FeedCount, m.Status.ArticleCount, m.Status.UnseenCount, m.Status.State)
	if m.Status.LastRefresh != nil {
		line += " | last refresh " + m.Status.LastRefresh.RefreshedAt.Local().Format("15:04")
	}
	return InfoStyle.Render(line)
}

// window returns the slice of articles that fits on screen around the cursor.
func (m Model) window() (int, int) {
	height := defaultListHeight
	if m.Height > 10 {
		height = m.Height - 8
	}
	start := 0
	if m.Cursor >= height {
		start = m.Cursor - height + 1
	}
	end := start + height
	if end > len(m.Articles) {
		end = len(m.Articles)
	}
	return start, end
}
