// Package feeds polls configured RSS feeds and stores their entries,
// deduplicating by article URL.
package feeds

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mmcdole/gofeed"

	"hirewatch/internal/store"
)

// maxFeedBody bounds how much of a feed response is read.
const maxFeedBody = 5 * 1024 * 1024

// ArticleStore is the slice of the store the aggregator needs.
type ArticleStore interface {
	InsertArticle(ctx context.Context, a store.Article) (bool, error)
}

// Aggregator downloads RSS feeds and persists new articles.
type Aggregator struct {
	store  ArticleStore
	client *http.Client
	logger *slog.Logger
}

// NewAggregator wires an aggregator with its dependencies.
func NewAggregator(s ArticleStore, client *http.Client, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: s, client: client, logger: logger}
}

// FetchAll fetches every feed URL and inserts its entries. A feed that fails
// to download or parse is logged and skipped; the counts cover the rest.
func (a *Aggregator) FetchAll(ctx context.Context, feedURLs []string) (fetched, added int, err error) {
	for _, feedURL := range feedURLs {
		if ctx.Err() != nil {
			return fetched, added, ctx.Err()
		}

		feed, err := a.fetch(ctx, feedURL)
		if err != nil {
			a.logger.Warn("feed fetch failed, skipping", "url", feedURL, "error", err)
			continue
		}

		source := feedHost(feedURL)
		for _, entry := range feed.Items {
			if entry.Link == "" {
				continue
			}
			fetched++
			ok, err := a.store.InsertArticle(ctx, store.Article{
				Title:   entry.Title,
				Content: entry.Description,
				Source:  source,
				URL:     entry.Link,
			})
			if err != nil {
				return fetched, added, fmt.Errorf("store article from %s: %w", feedURL, err)
			}
			if ok {
				added++
			}
		}
		a.logger.Info("feed processed", "url", feedURL, "entries", len(feed.Items))
	}
	return fetched, added, nil
}

func (a *Aggregator) fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "hirewatch/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}

// feedHost extracts the host portion of a feed URL for the article source
// column; the raw URL is returned when it does not parse.
func feedHost(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil || u.Host == "" {
		return feedURL
	}
	return u.Host
}
