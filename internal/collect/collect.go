// Package collect turns a hiring source into the flat list of raw items to
// parse, batching and pacing comment fetches against the API rate limit.
package collect

import (
	"context"
	"fmt"
	"log/slog"

	"hirewatch/internal/hn"
	"hirewatch/internal/model"
	"hirewatch/internal/ratelimit"
)

// batchSize bounds how many comments are fetched back-to-back before the
// pacer inserts a delay.
const batchSize = 30

// PaceScope is the pacer scope used between comment batches.
const PaceScope = "comment-batch"

// Collector fetches the content items of a hiring source.
type Collector struct {
	fetcher model.ItemFetcher
	pacer   *ratelimit.Pacer
	logger  *slog.Logger
}

// NewCollector wires a collector with its dependencies. The pacer's batch
// scope is reset per collection, so each source's batches pace independently.
func NewCollector(fetcher model.ItemFetcher, pacer *ratelimit.Pacer, logger *slog.Logger) *Collector {
	return &Collector{fetcher: fetcher, pacer: pacer, logger: logger}
}

// Collect returns up to maxItems raw items for the source, in listing order.
// Deleted, dead, and empty items are skipped. For an individual posting the
// post body itself is returned as the single item.
func (c *Collector) Collect(ctx context.Context, source model.HiringSource, maxItems int) ([]model.RawItem, error) {
	post, err := c.fetcher.Item(ctx, source.ID)
	if err != nil {
		return nil, fmt.Errorf("collect source %d: %w", source.ID, err)
	}

	// An individual posting carries a direct link and no comment tree; the
	// post is the job content.
	if post.URL != "" && len(post.Kids) == 0 {
		return []model.RawItem{itemFromPost(post)}, nil
	}

	if len(post.Kids) == 0 {
		c.logger.Info("source has no comments", "source", source.ID)
		return nil, nil
	}

	ids := post.Kids
	if len(ids) > maxItems {
		ids = ids[:maxItems]
	}
	c.logger.Info("collecting comments", "source", source.ID, "count", len(ids))

	// Batch pacing is scoped to this source. The first wait stamps the fresh
	// scope and returns at once; every later one enforces the batch delay.
	c.pacer.Reset(PaceScope)

	items := make([]model.RawItem, 0, len(ids))
	for start := 0; start < len(ids); start += batchSize {
		if err := c.pacer.Wait(ctx, PaceScope); err != nil {
			return items, err
		}

		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		for _, id := range ids[start:end] {
			comment, err := c.fetcher.Item(ctx, id)
			if err != nil {
				c.logger.Debug("skipping comment", "id", id, "error", err)
				continue
			}
			if comment.Deleted || comment.Dead || comment.Text == "" {
				continue
			}
			items = append(items, model.RawItem{
				ID:       comment.ID,
				By:       comment.By,
				Time:     comment.Time,
				Text:     comment.Text,
				ParentID: source.ID,
				URL:      hn.ItemURL(comment.ID),
			})
		}
	}

	c.logger.Info("collected items", "source", source.ID, "items", len(items))
	return items, nil
}

// itemFromPost recasts a job story as a raw item: text body when present,
// title otherwise, self-referencing parent.
func itemFromPost(post *model.Item) model.RawItem {
	text := post.Text
	if text == "" {
		text = post.Title
	}
	url := post.URL
	if url == "" {
		url = hn.ItemURL(post.ID)
	}
	return model.RawItem{
		ID:       post.ID,
		By:       post.By,
		Time:     post.Time,
		Text:     text,
		ParentID: post.ID,
		URL:      url,
	}
}
