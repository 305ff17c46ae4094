package types

import "time"

// Entry is one raw item handed over by the feed parser, before classification.
// Optional source fields are pointers; nil means the feed did not carry them.
type Entry struct {
	ID          string
	Title       *string
	Content     *string
	Summary     *string
	Link        *string
	MediaGroups []MediaGroup
	Authors     []Person
	Published   *time.Time
	Updated     *time.Time
}

// MediaGroup is a media:group, a standalone media:content or an enclosure.
type MediaGroup struct {
	Contents []MediaContent
}

type MediaContent struct {
	URL      *string
	MimeType *string
}

type Person struct {
	Name string
}
