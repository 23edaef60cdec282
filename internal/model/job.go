package model

import (
	"context"
	"time"
)

// SourceType discriminates the two shapes a hiring source can take.
type SourceType string

const (
	// SourceCommunityThread is a monthly "Who is hiring?" discussion post
	// whose top-level comments are individual job postings.
	SourceCommunityThread SourceType = "community_thread"
	// SourceIndividualPosting is a standalone job story; the post body itself
	// is the single posting to parse.
	SourceIndividualPosting SourceType = "individual_posting"
)

// HiringSource is a discovered post that job postings are collected from.
// It lives only for the duration of one pipeline run (and the discovery
// cache window); it is never persisted to the job store.
type HiringSource struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Type      SourceType `json:"type"`
	MonthYear string     `json:"month_year,omitempty"`
	URL       string     `json:"url"`
	// ItemIDs are the child items to collect. For an individual posting this
	// is a single self-reference so the post body flows through the same
	// collection path as a comment.
	ItemIDs []int64 `json:"item_ids"`
}

// RawItem is one content node fetched from the discussion API: a comment,
// or the post itself recast as an item for individual postings.
type RawItem struct {
	ID       int64
	By       string
	Time     int64 // unix seconds
	Text     string
	ParentID int64
	URL      string
}

// Job is the persisted entity extracted from a RawItem. ItemID is the unique
// key; re-ingesting the same item overwrites derived fields, never duplicates.
// Empty string means "not extracted" for Company/Role/Location/Salary.
type Job struct {
	ItemID       int64
	ParentID     int64
	PostedBy     string
	PostedAt     time.Time
	Text         string // cleaned plain text
	HTMLText     string // original raw text as fetched
	URL          string
	Company      string
	Role         string
	Location     string
	Salary       string
	IsRemote     bool
	IsInternship bool
	IsNewGrad    bool
	Keywords     []string
	CreatedAt    time.Time // server-assigned
	UpdatedAt    time.Time // server-assigned
}

// Query holds the optional, ANDed filters for searching stored jobs.
// Zero values mean "no filter" for every field.
type Query struct {
	Internship   bool
	NewGrad      bool
	Remote       bool
	Company      string   // case-insensitive substring
	Location     string   // case-insensitive substring
	Keywords     []string // any-of overlap with the stored keyword set
	Days         int      // only jobs posted within the last N days
	Year         int      // posted-at calendar year
	YCCohortYear int      // YC batch year derived from company naming (S/W token)
	Limit        int
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	PostsFound   int
	ItemsFetched int
	JobsParsed   int
	JobsInserted int
	JobsUpdated  int
}

// Item is the detail shape returned by the discussion API for a single node.
type Item struct {
	ID      int64   `json:"id"`
	Type    string  `json:"type"`
	By      string  `json:"by"`
	Time    int64   `json:"time"`
	Text    string  `json:"text"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Kids    []int64 `json:"kids"`
	Deleted bool    `json:"deleted"`
	Dead    bool    `json:"dead"`
}

// ItemFetcher retrieves items and story listings from the discussion API.
type ItemFetcher interface {
	Item(ctx context.Context, id int64) (*Item, error)
	Stories(ctx context.Context, kind string) ([]int64, error)
}

// Cache is a best-effort key/value cache with TTL. Implementations must
// degrade silently: a backend failure is reported as a miss, never an error.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Notifier reports the outcome of a pipeline run.
type Notifier interface {
	Notify(stats RunStats, jobs []Job) error
}
