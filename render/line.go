package render

import (
	"fmt"

	"lipu/types"
)

// Status labels shown in front of an article.
const (
	StatusNew     = "new"
	StatusViewed  = "viewed"
	StatusPartial = "partial"
)

// StatusTag summarises viewing progress in one word.
func StatusTag(p types.Progress) string {
	switch {
	case p.IsNone():
		return StatusNew
	case p.IsFully():
		return StatusViewed
	default:
		return StatusPartial
	}
}

// KindLabel names the body variant for display.
func KindLabel(b types.Body) string {
	if b == nil {
		return "article"
	}
	switch b.Kind() {
	case types.KindAudio:
		return "audio"
	case types.KindVideo:
		return "video"
	case types.KindYouTubeLink:
		return "youtube video"
	default:
		return "article"
	}
}

// Line renders an article as "<status> <title> (<kind>)".
func Line(a types.Article) string {
	return fmt.Sprintf("%s %s (%s)", StatusTag(a.Viewed), a.Name, KindLabel(a.Body))
}
