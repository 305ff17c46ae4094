package render

import (
	"html"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
)

var (
	tagRe   = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRe = regexp.MustCompile(`[ \t]+`)
	blankRe = regexp.MustCompile(`\n{3,}`)
)

// PlainText turns a text body into something readable in a terminal. Feed
// content is usually HTML; readability pulls the main text out of it. Bodies
// that carry no markup come back trimmed but otherwise unchanged.
func PlainText(content string, link *string) string {
	content = strings.TrimSpace(content)
	if !strings.Contains(content, "<") {
		return content
	}

	var pageURL *url.URL
	if link != nil {
		pageURL, _ = url.Parse(*link)
	}

	doc := "<html><body>" + content + "</body></html>"
	if extracted, err := readability.FromReader(strings.NewReader(doc), pageURL); err == nil {
		if text := tidy(extracted.TextContent); text != "" {
			return text
		}
	}
	return stripTags(content)
}

func stripTags(s string) string {
	return tidy(html.UnescapeString(tagRe.ReplaceAllString(s, " ")))
}

func tidy(s string) string {
	s = spaceRe.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(blankRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}
