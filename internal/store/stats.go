package store

import (
	"context"
	"fmt"
	"time"
)

// Stats aggregates the stored jobs: totals, per-flag counts, top companies
// and keywords, and per-day posting counts over the last 30 days.
func (s *SQLiteStore) Stats(ctx context.Context) (*JobStats, error) {
	stats := &JobStats{}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(is_internship), 0),
			COALESCE(SUM(is_new_grad), 0),
			COALESCE(SUM(is_remote), 0)
		FROM jobs`).
		Scan(&stats.TotalJobs, &stats.Internships, &stats.NewGrad, &stats.Remote)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT company, COUNT(*) AS n
		FROM jobs
		WHERE company IS NOT NULL
		GROUP BY company
		ORDER BY n DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c CompanyCount
		if err := rows.Scan(&c.Company, &c.Count); err != nil {
			return nil, fmt.Errorf("scan company count: %w", err)
		}
		stats.TopCompanies = append(stats.TopCompanies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top companies: %w", err)
	}

	kwRows, err := s.db.QueryContext(ctx, `
		SELECT json_each.value, COUNT(*) AS n
		FROM jobs, json_each(jobs.keywords)
		GROUP BY json_each.value
		ORDER BY n DESC
		LIMIT 20`)
	if err != nil {
		return nil, fmt.Errorf("top keywords: %w", err)
	}
	defer kwRows.Close()
	for kwRows.Next() {
		var k KeywordCount
		if err := kwRows.Scan(&k.Keyword, &k.Count); err != nil {
			return nil, fmt.Errorf("scan keyword count: %w", err)
		}
		stats.TopKeywords = append(stats.TopKeywords, k)
	}
	if err := kwRows.Err(); err != nil {
		return nil, fmt.Errorf("top keywords: %w", err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -30).Format(timeLayout)
	dayRows, err := s.db.QueryContext(ctx, `
		SELECT date(posted_at) AS d, COUNT(*)
		FROM jobs
		WHERE posted_at >= ?
		GROUP BY d
		ORDER BY d DESC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("jobs by day: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var d DayCount
		if err := dayRows.Scan(&d.Day, &d.Count); err != nil {
			return nil, fmt.Errorf("scan day count: %w", err)
		}
		stats.JobsByDay = append(stats.JobsByDay, d)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("jobs by day: %w", err)
	}

	return stats, nil
}
