// Package suggestion calls the content-suggestion API with a user's theme names.
package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// ErrNotConfigured is returned when the suggestion API URL is missing.
var ErrNotConfigured = errors.New("suggestion: API not configured")

// Client is an HTTP client for the suggestion API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the suggestion API at baseURL.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

type suggestRequest struct {
	Themes []string `json:"themes"`
	Count  int      `json:"count,omitempty"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type pagesResponse struct {
	Pages []string `json:"pages"`
}

// Generate returns count suggestions drawn from themes.
func (c *Client) Generate(ctx context.Context, themes []string, count int) ([]string, error) {
	var out suggestResponse
	if err := c.post(ctx, "/suggestions", suggestRequest{Themes: themes, Count: count}, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// GeneratePages returns one page of content per theme, in the order of themes.
func (c *Client) GeneratePages(ctx context.Context, themes []string) ([]string, error) {
	var out pagesResponse
	if err := c.post(ctx, "/pages", suggestRequest{Themes: themes}, &out); err != nil {
		return nil, err
	}
	if len(out.Pages) != len(themes) {
		return nil, fmt.Errorf("suggestion: got %d pages for %d themes", len(out.Pages), len(themes))
	}
	return out.Pages, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	if c.BaseURL == "" {
		return ErrNotConfigured
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("suggestion: %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("suggestion: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("suggestion: decode %s: %w", path, err)
	}
	return nil
}
