// Package store persists jobs and articles in SQLite and answers filtered
// queries over them.
package store

import (
	"context"

	"hirewatch/internal/model"
)

// JobStore is the persistence contract consumed by the pipeline and the
// read-side query service.
type JobStore interface {
	// Upsert writes or merges jobs keyed by item id, in one transaction.
	// It reports exactly how many rows were inserted vs updated.
	Upsert(ctx context.Context, jobs []model.Job) (inserted, updated int, err error)
	// Search returns jobs matching the ANDed filters, newest first.
	Search(ctx context.Context, q model.Query) ([]model.Job, error)
	// Stats aggregates the stored jobs.
	Stats(ctx context.Context) (*JobStats, error)
}

// Article is one RSS entry persisted by the feed aggregator boundary.
type Article struct {
	ID      int64
	Title   string
	Content string
	Source  string
	URL     string
}

// CompanyCount is a company with its posting count.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

// KeywordCount is a keyword with its occurrence count across stored jobs.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// DayCount is a posting count for one calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// JobStats aggregates the jobs table.
type JobStats struct {
	TotalJobs    int            `json:"total_jobs"`
	Internships  int            `json:"internships"`
	NewGrad      int            `json:"new_grad"`
	Remote       int            `json:"remote"`
	TopCompanies []CompanyCount `json:"top_companies"`
	TopKeywords  []KeywordCount `json:"top_keywords"`
	JobsByDay    []DayCount     `json:"jobs_by_day"`
}
