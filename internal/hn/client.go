// Package hn is a minimal client for the Hacker News Firebase API.
package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"hirewatch/internal/model"
)

// DefaultBaseURL is the public read-only HN API endpoint.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

const itemPageURL = "https://news.ycombinator.com/item?id=%d"

// Story listing kinds accepted by Stories.
const (
	KindAsk = "ask"
	KindJob = "job"
)

// ItemURL returns the canonical discussion-page URL for an item.
func ItemURL(id int64) string {
	return fmt.Sprintf(itemPageURL, id)
}

// Client fetches items and story listings from the HN API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client against the given base URL (DefaultBaseURL for
// the production API; tests point this at an httptest server).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, client: httpClient}
}

// Item fetches the detail of a single item (story or comment). The API
// returns a JSON null for ids it does not know; that surfaces as
// model.ErrNotFound so callers can skip without retrying.
func (c *Client) Item(ctx context.Context, id int64) (*model.Item, error) {
	var item *model.Item
	if err := c.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", c.baseURL, id), &item); err != nil {
		return nil, fmt.Errorf("fetch item %d: %w", id, err)
	}
	if item == nil {
		return nil, fmt.Errorf("fetch item %d: %w", id, model.ErrNotFound)
	}
	return item, nil
}

// Stories fetches an ordered list of story ids. The API has no pagination;
// callers bound the result by truncation.
func (c *Client) Stories(ctx context.Context, kind string) ([]int64, error) {
	var ids []int64
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%sstories.json", c.baseURL, kind), &ids); err != nil {
		return nil, fmt.Errorf("fetch %s stories: %w", kind, err)
	}
	return ids, nil
}

// MaxItem returns the current maximum item id, used as a connectivity probe.
func (c *Client) MaxItem(ctx context.Context) (int64, error) {
	var max int64
	if err := c.getJSON(ctx, c.baseURL+"/maxitem.json", &max); err != nil {
		return 0, fmt.Errorf("fetch max item: %w", err)
	}
	return max, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
