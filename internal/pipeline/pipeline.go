// Package pipeline drives one ingestion run: discovery, collection, parsing,
// and storage, plus the cached read path over stored jobs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"hirewatch/internal/collect"
	"hirewatch/internal/discover"
	"hirewatch/internal/model"
	"hirewatch/internal/parse"
	"hirewatch/internal/ratelimit"
	"hirewatch/internal/store"
)

// sourcePaceScope is the pacer scope used between hiring sources.
const sourcePaceScope = "hiring-source"

// connectivityProber is the probe the pipeline runs before any work; the HN
// client satisfies it with its max-item endpoint.
type connectivityProber interface {
	MaxItem(ctx context.Context) (int64, error)
}

// Pipeline sequences discovery, collection, parsing, and storage and
// assembles run statistics.
type Pipeline struct {
	prober     connectivityProber
	discoverer *discover.Discoverer
	collector  *collect.Collector
	parser     *parse.Parser
	store      store.JobStore
	notifier   model.Notifier
	pacer      *ratelimit.Pacer
	maxItems   int
	logger     *slog.Logger
}

// New wires a pipeline with all its dependencies. maxItems bounds how many
// comments are collected per source.
func New(
	prober connectivityProber,
	d *discover.Discoverer,
	c *collect.Collector,
	p *parse.Parser,
	s store.JobStore,
	n model.Notifier,
	pacer *ratelimit.Pacer,
	maxItems int,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		prober:     prober,
		discoverer: d,
		collector:  c,
		parser:     p,
		store:      s,
		notifier:   n,
		pacer:      pacer,
		maxItems:   maxItems,
		logger:     logger,
	}
}

// Run executes one fetch cycle for up to postsLimit hiring sources. Fetch
// failures for individual sources or items are recorded and skipped; a
// storage failure aborts the run. Parsed jobs are upserted as one batch at
// the end.
func (p *Pipeline) Run(ctx context.Context, postsLimit int) (model.RunStats, error) {
	var stats model.RunStats

	maxItem, err := p.prober.MaxItem(ctx)
	if err != nil {
		return stats, fmt.Errorf("api connectivity check: %w", err)
	}
	p.logger.Info("api connectivity confirmed", "max_item", maxItem)

	sources, err := p.discoverer.Discover(ctx, postsLimit)
	if err != nil {
		return stats, fmt.Errorf("discover hiring sources: %w", err)
	}
	stats.PostsFound = len(sources)

	if len(sources) == 0 {
		p.logger.Warn("no hiring sources found")
		return stats, nil
	}

	var jobs []model.Job
	for i, source := range sources {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		// Throttle between sources, but never before the first one.
		if i > 0 {
			if err := p.pacer.Wait(ctx, sourcePaceScope); err != nil {
				return stats, err
			}
		}

		p.logger.Info("processing source",
			"source", source.ID,
			"title", source.Title,
			"type", source.Type,
		)

		items, err := p.collector.Collect(ctx, source, p.maxItems)
		if err != nil {
			p.logger.Error("collecting source failed, skipping", "source", source.ID, "error", err)
			continue
		}
		stats.ItemsFetched += len(items)

		parsed := 0
		for _, item := range items {
			if job, ok := p.parser.Parse(item); ok {
				jobs = append(jobs, *job)
				parsed++
			}
		}
		p.logger.Info("parsed source", "source", source.ID, "items", len(items), "jobs", parsed)
	}
	stats.JobsParsed = len(jobs)

	if len(jobs) > 0 {
		inserted, updated, err := p.store.Upsert(ctx, jobs)
		if err != nil {
			return stats, fmt.Errorf("save jobs: %w", err)
		}
		stats.JobsInserted = inserted
		stats.JobsUpdated = updated
	}

	if p.notifier != nil {
		if err := p.notifier.Notify(stats, jobs); err != nil {
			p.logger.Warn("run notification failed", "error", err)
		}
	}

	p.logger.Info("run complete",
		"posts_found", stats.PostsFound,
		"items_fetched", stats.ItemsFetched,
		"jobs_parsed", stats.JobsParsed,
		"jobs_inserted", stats.JobsInserted,
		"jobs_updated", stats.JobsUpdated,
	)
	return stats, nil
}
