package rssfeeds

import (
	"strings"

	"lipu/types"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// ToEntry converts a gofeed item into the parser-independent Entry shape.
// Media groups are collected in document priority: media:group elements,
// then standalone media:content elements, then enclosures (RSS enclosures,
// Atom rel="enclosure" links and JSON Feed attachments).
func ToEntry(item *gofeed.Item) types.Entry {
	return types.Entry{
		ID:          entryID(item),
		Title:       optional(item.Title),
		Content:     optional(item.Content),
		Summary:     optional(item.Description),
		Link:        optional(item.Link),
		MediaGroups: mediaGroups(item),
		Authors:     authors(item),
		Published:   item.PublishedParsed,
		Updated:     item.UpdatedParsed,
	}
}

// entryID uses the feed GUID if available, otherwise generates one from the link
// or, failing that, from title and publication date.
func entryID(item *gofeed.Item) string {
	if id := strings.TrimSpace(item.GUID); id != "" {
		return id
	}
	if item.Link != "" {
		return types.GenerateID(item.Link)
	}
	return types.GenerateID(item.Title + "|" + item.Published)
}

func mediaGroups(item *gofeed.Item) []types.MediaGroup {
	var groups []types.MediaGroup

	if media, ok := item.Extensions["media"]; ok {
		for _, g := range media["group"] {
			groups = append(groups, types.MediaGroup{Contents: mediaContents(g.Children["content"])})
		}
		for _, c := range media["content"] {
			groups = append(groups, types.MediaGroup{Contents: mediaContents([]ext.Extension{c})})
		}
	}

	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		groups = append(groups, types.MediaGroup{Contents: []types.MediaContent{{
			URL:      optional(enc.URL),
			MimeType: optional(enc.Type),
		}}})
	}

	return groups
}

func mediaContents(elems []ext.Extension) []types.MediaContent {
	contents := make([]types.MediaContent, 0, len(elems))
	for _, e := range elems {
		contents = append(contents, types.MediaContent{
			URL:      optional(e.Attrs["url"]),
			MimeType: optional(e.Attrs["type"]),
		})
	}
	return contents
}

func authors(item *gofeed.Item) []types.Person {
	people := item.Authors
	if len(people) == 0 && item.Author != nil {
		people = []*gofeed.Person{item.Author}
	}

	out := make([]types.Person, 0, len(people))
	for _, p := range people {
		if p == nil || strings.TrimSpace(p.Name) == "" {
			continue
		}
		out = append(out, types.Person{Name: strings.TrimSpace(p.Name)})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
