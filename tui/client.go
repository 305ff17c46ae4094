package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lipu/types"
)

// APIClient is a thin HTTP client for the lipu API
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a client. Refreshes fetch every feed server-side, so
// the timeout is generous.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type articlesResponse struct {
	Articles []types.ArticleView `json:"articles"`
}

// GetStatus fetches the library status
func (c *APIClient) GetStatus() (*types.StatusResponse, error) {
	var status types.StatusResponse
	if err := c.do(http.MethodGet, "/api/status", nil, &status); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &status, nil
}

// ListArticles fetches every article, newest first
func (c *APIClient) ListArticles() ([]types.ArticleView, error) {
	var resp articlesResponse
	if err := c.do(http.MethodGet, "/api/articles", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return resp.Articles, nil
}

// Refresh runs a refresh and returns the new article list
func (c *APIClient) Refresh() ([]types.ArticleView, error) {
	var resp articlesResponse
	if err := c.do(http.MethodPost, "/api/rss/refresh", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to refresh: %w", err)
	}
	return resp.Articles, nil
}

// SetProgress records viewing progress for one article
func (c *APIClient) SetProgress(id string, p types.Progress) (*types.ArticleView, error) {
	var view types.ArticleView
	if err := c.do(http.MethodPut, "/api/articles/"+url.PathEscape(id)+"/progress", p, &view); err != nil {
		return nil, fmt.Errorf("failed to set progress: %w", err)
	}
	return &view, nil
}

// GetText fetches the readable text of a text article
func (c *APIClient) GetText(id string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	if err := c.do(http.MethodGet, "/api/articles/"+url.PathEscape(id)+"/text", nil, &resp); err != nil {
		return "", fmt.Errorf("failed to load text: %w", err)
	}
	return resp.Text, nil
}

func (c *APIClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(msg))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
