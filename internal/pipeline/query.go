package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"hirewatch/internal/cache"
	"hirewatch/internal/model"
	"hirewatch/internal/store"
)

const statsCacheKey = "hn:job_stats"

// QueryService is the read path: filtered searches and aggregates served
// through the cache, falling back to the store on a miss. The cache is a
// pure accelerator; every result is computable without it.
type QueryService struct {
	store  store.JobStore
	cache  model.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewQueryService wires the read path. ttl governs how long query results
// stay cached.
func NewQueryService(s store.JobStore, c model.Cache, ttl time.Duration, logger *slog.Logger) *QueryService {
	return &QueryService{store: s, cache: c, ttl: ttl, logger: logger}
}

// Search answers a filtered job query read-through: cache hit decodes the
// stored result; miss queries the store and populates the cache.
func (q *QueryService) Search(ctx context.Context, query model.Query) ([]model.Job, error) {
	key := "hn:search:" + cache.GenerateKey(queryTokens(query), query.Limit)

	if cached, ok := q.cache.Get(ctx, key); ok {
		var jobs []model.Job
		if err := json.Unmarshal([]byte(cached), &jobs); err == nil {
			q.logger.Debug("search served from cache", "key", key, "jobs", len(jobs))
			return jobs, nil
		}
		q.cache.Delete(ctx, key)
	}

	jobs, err := q.store.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(jobs); err == nil {
		q.cache.Set(ctx, key, string(data), q.ttl)
	}
	return jobs, nil
}

// Stats answers the aggregate query read-through under a fixed key.
func (q *QueryService) Stats(ctx context.Context) (*store.JobStats, error) {
	if cached, ok := q.cache.Get(ctx, statsCacheKey); ok {
		var stats store.JobStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			q.logger.Debug("stats served from cache")
			return &stats, nil
		}
		q.cache.Delete(ctx, statsCacheKey)
	}

	stats, err := q.store.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		q.cache.Set(ctx, statsCacheKey, string(data), q.ttl)
	}
	return stats, nil
}

// queryTokens flattens a query's filters into cache-key tokens. Field names
// prefix each value so distinct filters never collide on equal values.
func queryTokens(q model.Query) []string {
	var tokens []string
	if q.Internship {
		tokens = append(tokens, "internship")
	}
	if q.NewGrad {
		tokens = append(tokens, "new_grad")
	}
	if q.Remote {
		tokens = append(tokens, "remote")
	}
	if q.Company != "" {
		tokens = append(tokens, "company="+strings.ToLower(q.Company))
	}
	if q.Location != "" {
		tokens = append(tokens, "location="+strings.ToLower(q.Location))
	}
	for _, kw := range q.Keywords {
		tokens = append(tokens, "kw="+strings.ToLower(kw))
	}
	if q.Days > 0 {
		tokens = append(tokens, "days="+strconv.Itoa(q.Days))
	}
	if q.Year > 0 {
		tokens = append(tokens, "year="+strconv.Itoa(q.Year))
	}
	if q.YCCohortYear > 0 {
		tokens = append(tokens, "yc="+strconv.Itoa(q.YCCohortYear))
	}
	return tokens
}
