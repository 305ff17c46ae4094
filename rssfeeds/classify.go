package rssfeeds

import (
	"errors"
	"strings"

	"lipu/types"
)

// Entry-level classification failures. They drop a single entry, never a feed.
var (
	ErrEmptyBody          = errors.New("entry has neither content nor summary")
	ErrEmptyContent       = errors.New("media group has no content items")
	ErrMissingDownloadURL = errors.New("media content has no url")
	ErrUnknownMimeType    = errors.New("unknown or missing mime type")
)

const authorSeparator = ", "

// Classify turns a parsed entry into an Article, choosing the body variant from
// the attached media. Entries without media become text articles.
func Classify(entry types.Entry) (types.Article, error) {
	body, err := classifyBody(entry)
	if err != nil {
		return types.Article{}, err
	}

	name := types.UntitledPlaceholder
	if entry.Title != nil {
		name = *entry.Title
	}

	return types.Article{
		ID:          entry.ID,
		Name:        name,
		Link:        entry.Link,
		Author:      joinAuthors(entry.Authors),
		Description: entry.Summary,
		Created:     entry.Published,
		Updated:     entry.Updated,
		Viewed:      types.Unseen(),
		Body:        body,
	}, nil
}

func classifyBody(entry types.Entry) (types.Body, error) {
	if len(entry.MediaGroups) == 0 {
		switch {
		case entry.Content != nil:
			return types.Text{Content: *entry.Content}, nil
		case entry.Summary != nil:
			return types.Text{Content: *entry.Summary}, nil
		default:
			return nil, ErrEmptyBody
		}
	}

	// Feeds in the wild attach at most one media item; the rest are ignored.
	group := entry.MediaGroups[0]
	if len(group.Contents) == 0 {
		return nil, ErrEmptyContent
	}
	content := group.Contents[0]

	if content.URL == nil {
		return nil, ErrMissingDownloadURL
	}
	if content.MimeType == nil {
		return nil, ErrUnknownMimeType
	}

	link := types.MediaLink{
		URL:        *content.URL,
		MimeType:   *content.MimeType,
		Downloaded: false,
	}

	major, minor, ok := strings.Cut(link.MimeType, "/")
	if !ok {
		return nil, ErrUnknownMimeType
	}

	switch {
	case major == "application" && minor == "x-shockwave-flash":
		return types.YouTubeLink{URL: link.URL}, nil
	case major == "video":
		return types.Video{Media: link}, nil
	case major == "audio":
		return types.Audio{Media: link}, nil
	default:
		return nil, ErrUnknownMimeType
	}
}

func joinAuthors(authors []types.Person) *string {
	if len(authors) == 0 {
		return nil
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.Name)
	}
	joined := strings.Join(names, authorSeparator)
	return &joined
}
