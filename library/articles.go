package library

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lipu/types"
)

// List returns all articles, newest first.
func (l *Library) List() []types.Article {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]types.Article{}, l.articles...)
}

func (l *Library) Load(id string) (types.Article, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(id)
	if i < 0 {
		return types.Article{}, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	return l.articles[i], nil
}

func (l *Library) SetViewingProgress(ctx context.Context, id string, p types.Progress) (types.Article, error) {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i < 0 {
		l.mu.Unlock()
		return types.Article{}, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	l.articles[i].Viewed = p
	updated := l.articles[i]
	l.mu.Unlock()

	return updated, l.persist(ctx)
}

// Search matches query against name, author, description and tags, ignoring
// case and runs of whitespace. An empty query matches everything.
func (l *Library) Search(query string) []types.Article {
	q := normalizeText(query)

	l.mu.RLock()
	defer l.mu.RUnlock()

	tagsByID := l.tagsByIDLocked()
	out := []types.Article{}
	for _, a := range l.articles {
		if q == "" || matches(a, tagsByID[a.ID], q) {
			out = append(out, a)
		}
	}
	return out
}

func matches(a types.Article, tags []string, q string) bool {
	fields := append([]string{a.Name}, tags...)
	if a.Author != nil {
		fields = append(fields, *a.Author)
	}
	if a.Description != nil {
		fields = append(fields, *a.Description)
	}
	for _, f := range fields {
		if strings.Contains(normalizeText(f), q) {
			return true
		}
	}
	return false
}

// WithTag returns the tagged articles in list order.
func (l *Library) WithTag(tag string) ([]types.Article, error) {
	tag = strings.TrimSpace(tag)

	l.mu.RLock()
	defer l.mu.RUnlock()

	ids, ok := l.tags[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTagNotFound, tag)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := []types.Article{}
	for _, a := range l.articles {
		if set[a.ID] {
			out = append(out, a)
		}
	}
	return out, nil
}

// Tags returns every tag name, sorted.
func (l *Library) Tags() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.tags))
	for tag := range l.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// TagsOf returns the tags on one article, sorted.
func (l *Library) TagsOf(id string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tags := l.tagsByIDLocked()[id]
	sort.Strings(tags)
	return tags
}

func (l *Library) AddTag(ctx context.Context, id, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ErrInvalidTag
	}

	l.mu.Lock()
	if l.indexLocked(id) < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	for _, existing := range l.tags[tag] {
		if existing == id {
			l.mu.Unlock()
			return nil
		}
	}
	l.tags[tag] = append(l.tags[tag], id)
	l.mu.Unlock()

	return l.persist(ctx)
}

// RemoveTag takes tag off one article. The tag disappears once nothing carries it.
func (l *Library) RemoveTag(ctx context.Context, id, tag string) error {
	tag = strings.TrimSpace(tag)

	l.mu.Lock()
	ids, ok := l.tags[tag]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTagNotFound, tag)
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == 0 {
		delete(l.tags, tag)
	} else {
		l.tags[tag] = kept
	}
	l.mu.Unlock()

	return l.persist(ctx)
}

// DropTag removes a tag from every article.
func (l *Library) DropTag(ctx context.Context, tag string) error {
	tag = strings.TrimSpace(tag)

	l.mu.Lock()
	if _, ok := l.tags[tag]; !ok {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTagNotFound, tag)
	}
	delete(l.tags, tag)
	l.mu.Unlock()

	return l.persist(ctx)
}

func (l *Library) tagsByIDLocked() map[string][]string {
	out := map[string][]string{}
	for tag, ids := range l.tags {
		for _, id := range ids {
			out[id] = append(out[id], tag)
		}
	}
	return out
}

// untagLocked forgets dropped article IDs in every tag (must hold mu)
func (l *Library) untagLocked(dropped map[string]bool) {
	if len(dropped) == 0 {
		return
	}
	for tag, ids := range l.tags {
		kept := ids[:0:0]
		for _, id := range ids {
			if !dropped[id] {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			delete(l.tags, tag)
		} else {
			l.tags[tag] = kept
		}
	}
}
