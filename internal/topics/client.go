// Package topics is a client for the ephemeral thread directory API.
//
// The directory stores short-lived thread records (five minute TTL on the
// server side), so listings are fetched on demand and never cached.
package topics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Topic is one live thread record.
type Topic struct {
	ID            string  `json:"id"`
	Timestamp     float64 `json:"timestamp"`
	Title         string  `json:"title"`
	UserPostingID string  `json:"user_posting_id"`
}

// Client talks to the thread directory over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the given base URL, e.g.
// http://localhost:8000.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// List returns all currently live threads, newest first (server order).
func (c *Client) List(ctx context.Context) ([]Topic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/records", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list threads: unexpected status %s", resp.Status)
	}

	var topics []Topic
	if err := json.NewDecoder(resp.Body).Decode(&topics); err != nil {
		return nil, fmt.Errorf("failed to decode thread list: %w", err)
	}
	return topics, nil
}

// Create registers a new thread and returns the stored record. The directory
// passes scalar arguments as query parameters.
func (c *Client) Create(ctx context.Context, title, userPostingID string) (Topic, error) {
	q := url.Values{}
	q.Set("title", title)
	q.Set("user_posting_id", userPostingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/record?"+q.Encode(), nil)
	if err != nil {
		return Topic{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Topic{}, fmt.Errorf("failed to create thread: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Topic{}, fmt.Errorf("create thread: unexpected status %s", resp.Status)
	}

	var topic Topic
	if err := json.NewDecoder(resp.Body).Decode(&topic); err != nil {
		return Topic{}, fmt.Errorf("failed to decode thread: %w", err)
	}
	return topic, nil
}
