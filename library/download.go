package library

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"lipu/types"
)

const downloadTimeout = 10 * time.Minute

// Downloader stores audio and video enclosures on local disk.
type Downloader struct {
	dir    string
	client *http.Client
}

// NewDownloader saves into dir. A nil client gets a 10 minute timeout.
func NewDownloader(dir string, client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	return &Downloader{dir: dir, client: client}
}

// PathFor is where media is (or would be) stored. The name is a stable hash
// of the URL, so re-downloading the same enclosure finds the existing file.
func (d *Downloader) PathFor(m types.MediaLink) string {
	return filepath.Join(d.dir, types.GenerateID(m.URL)+extensionFor(m))
}

// Fetch downloads m unless it is already on disk and returns the local path.
func (d *Downloader) Fetch(ctx context.Context, m types.MediaLink) (string, error) {
	dest := d.PathFor(m)
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", m.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("failed to download %s: server returned %s", m.URL, resp.Status)
	}

	tmp, err := os.CreateTemp(d.dir, ".partial-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", m.URL, err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}

	log.Printf("✅ Downloaded %s (%d bytes) to %s", m.URL, n, dest)
	return dest, nil
}

func extensionFor(m types.MediaLink) string {
	if u, err := url.Parse(m.URL); err == nil {
		if ext := path.Ext(u.Path); ext != "" && len(ext) <= 5 {
			return strings.ToLower(ext)
		}
	}
	if exts, err := mime.ExtensionsByType(m.MimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}

// Download stores the article's media locally and marks it downloaded.
func (l *Library) Download(ctx context.Context, id string) (types.Article, string, error) {
	if l.downloader == nil {
		return types.Article{}, "", fmt.Errorf("downloads are not configured")
	}

	a, err := l.Load(id)
	if err != nil {
		return types.Article{}, "", err
	}
	media, ok := types.MediaOf(a.Body)
	if !ok {
		return types.Article{}, "", fmt.Errorf("%w: %s", ErrNotDownloadable, id)
	}

	dest, err := l.downloader.Fetch(ctx, media)
	if err != nil {
		return types.Article{}, "", err
	}

	l.mu.Lock()
	i := l.indexLocked(id)
	if i < 0 {
		l.mu.Unlock()
		return types.Article{}, "", fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	media.Downloaded = true
	l.articles[i].Body = types.WithMedia(l.articles[i].Body, media)
	updated := l.articles[i]
	l.addLogLocked(fmt.Sprintf("Downloaded %q to %s", updated.Name, dest))
	l.mu.Unlock()

	return updated, dest, l.persist(ctx)
}
