// Package discover finds hiring sources on HN: monthly "Who is hiring?"
// community threads first, individual job stories as a fallback.
package discover

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"hirewatch/internal/hn"
	"hirewatch/internal/model"
)

const (
	// cacheKey holds the JSON-encoded result of the previous discovery run.
	cacheKey = "hn:hiring_sources"
	cacheTTL = time.Hour

	// candidateScan bounds how many Ask HN stories are inspected for
	// hiring-thread titles before giving up on phase 1.
	candidateScan = 100
)

// monthYearPattern matches the "(December 2024)" suffix of thread titles.
var monthYearPattern = regexp.MustCompile(`\((\w+)\s+(\d{4})\)`)

// Discoverer locates hiring sources via the item fetcher, consulting the
// cache before hitting the API.
type Discoverer struct {
	fetcher model.ItemFetcher
	cache   model.Cache
	logger  *slog.Logger
}

// NewDiscoverer wires a discoverer with its dependencies.
func NewDiscoverer(fetcher model.ItemFetcher, c model.Cache, logger *slog.Logger) *Discoverer {
	return &Discoverer{fetcher: fetcher, cache: c, logger: logger}
}

// Discover returns up to limit hiring sources. A cached result inside the TTL
// window is returned as-is. Individual item-fetch failures are skipped; only
// an empty result from both phases yields an empty list, never an error.
func (d *Discoverer) Discover(ctx context.Context, limit int) ([]model.HiringSource, error) {
	if cached, ok := d.cache.Get(ctx, cacheKey); ok {
		var sources []model.HiringSource
		if err := json.Unmarshal([]byte(cached), &sources); err == nil {
			d.logger.Info("using cached hiring sources", "count", len(sources))
			return sources, nil
		}
		// Unparseable cache entry: drop it and discover afresh.
		d.cache.Delete(ctx, cacheKey)
	}

	sources := d.findCommunityThreads(ctx, limit)

	if len(sources) == 0 {
		d.logger.Info("no community hiring threads found, falling back to individual postings")
		sources = d.findIndividualPostings(ctx, limit)
	}

	if len(sources) > 0 {
		if data, err := json.Marshal(sources); err == nil {
			d.cache.Set(ctx, cacheKey, string(data), cacheTTL)
		}
	}

	d.logger.Info("discovery complete", "sources", len(sources))
	return sources, nil
}

// findCommunityThreads scans the Ask HN listing for "Who is hiring?" threads.
func (d *Discoverer) findCommunityThreads(ctx context.Context, limit int) []model.HiringSource {
	ids, err := d.fetcher.Stories(ctx, hn.KindAsk)
	if err != nil {
		d.logger.Warn("listing ask stories failed", "error", err)
		return nil
	}

	if len(ids) > candidateScan {
		ids = ids[:candidateScan]
	}

	var sources []model.HiringSource
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		story, err := d.fetcher.Item(ctx, id)
		if err != nil {
			d.logger.Debug("skipping story", "id", id, "error", err)
			continue
		}

		title := strings.ToLower(story.Title)
		if !strings.Contains(title, "who is hiring?") && !strings.Contains(title, "who's hiring?") {
			continue
		}

		src := model.HiringSource{
			ID:        story.ID,
			Title:     story.Title,
			Type:      model.SourceCommunityThread,
			MonthYear: extractMonthYear(story.Title),
			URL:       hn.ItemURL(story.ID),
			ItemIDs:   story.Kids,
		}
		sources = append(sources, src)
		d.logger.Info("found community hiring thread", "title", story.Title, "comments", len(story.Kids))

		if len(sources) >= limit {
			break
		}
	}
	return sources
}

// findIndividualPostings takes the first limit job stories and recasts each
// as a source whose single child item is the post itself.
func (d *Discoverer) findIndividualPostings(ctx context.Context, limit int) []model.HiringSource {
	ids, err := d.fetcher.Stories(ctx, hn.KindJob)
	if err != nil {
		d.logger.Warn("listing job stories failed", "error", err)
		return nil
	}

	if len(ids) > limit {
		ids = ids[:limit]
	}

	var sources []model.HiringSource
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		story, err := d.fetcher.Item(ctx, id)
		if err != nil {
			d.logger.Debug("skipping job story", "id", id, "error", err)
			continue
		}

		sources = append(sources, model.HiringSource{
			ID:        story.ID,
			Title:     story.Title,
			Type:      model.SourceIndividualPosting,
			MonthYear: "Individual Postings",
			URL:       hn.ItemURL(story.ID),
			// Self-reference: downstream collection parses the post body as
			// the sole item.
			ItemIDs: []int64{story.ID},
		})
		d.logger.Info("added individual job posting", "title", story.Title)
	}
	return sources
}

// extractMonthYear pulls the "Month Year" label out of a thread title, or
// returns "" when the title carries no parenthesized date.
func extractMonthYear(title string) string {
	m := monthYearPattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}
