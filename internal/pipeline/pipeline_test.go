package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"hirewatch/internal/collect"
	"hirewatch/internal/discover"
	"hirewatch/internal/model"
	"hirewatch/internal/parse"
	"hirewatch/internal/ratelimit"
	"hirewatch/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHN serves canned stories and items and answers the connectivity probe.
type fakeHN struct {
	askIDs   []int64
	items    map[int64]*model.Item
	probeErr error
}

func (f *fakeHN) MaxItem(context.Context) (int64, error) {
	if f.probeErr != nil {
		return 0, f.probeErr
	}
	return 99999, nil
}

func (f *fakeHN) Item(_ context.Context, id int64) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return item, nil
}

func (f *fakeHN) Stories(_ context.Context, kind string) ([]int64, error) {
	if kind == "ask" {
		return f.askIDs, nil
	}
	return nil, nil
}

// fakeStore records upserted jobs, treating every job as an insert unless
// its id was seen before.
type fakeStore struct {
	seen    map[int64]bool
	upserts int
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[int64]bool)}
}

func (s *fakeStore) Upsert(_ context.Context, jobs []model.Job) (inserted, updated int, err error) {
	if s.saveErr != nil {
		return 0, 0, s.saveErr
	}
	s.upserts++
	for _, j := range jobs {
		if s.seen[j.ItemID] {
			updated++
		} else {
			s.seen[j.ItemID] = true
			inserted++
		}
	}
	return inserted, updated, nil
}

func (s *fakeStore) Search(context.Context, model.Query) ([]model.Job, error) {
	return nil, nil
}

func (s *fakeStore) Stats(context.Context) (*store.JobStats, error) {
	return &store.JobStats{}, nil
}

type fakeCache struct {
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.data[key] = value
}

func (c *fakeCache) Delete(_ context.Context, key string) {
	delete(c.data, key)
}

type recordingNotifier struct {
	stats *model.RunStats
}

func (n *recordingNotifier) Notify(stats model.RunStats, _ []model.Job) error {
	n.stats = &stats
	return nil
}

func newPipeline(hn *fakeHN, s store.JobStore, n model.Notifier) *Pipeline {
	logger := discardLogger()
	pacer := ratelimit.NewPacer(time.Millisecond)
	return New(
		hn,
		discover.NewDiscoverer(hn, newFakeCache(), logger),
		collect.NewCollector(hn, pacer, logger),
		parse.NewParser(logger),
		s, n, pacer, 500, logger,
	)
}

func TestRun_EndToEnd(t *testing.T) {
	hn := &fakeHN{
		askIDs: []int64{10},
		items: map[int64]*model.Item{
			10: {ID: 10, Title: "Ask HN: Who is hiring? (August 2026)", Kids: []int64{11, 12}},
			11: {ID: 11, By: "alice", Time: 1717200000,
				Text: "Acme Corp is hiring a Backend Engineer in Berlin. Remote OK. $120k-$150k."},
			12: {ID: 12, By: "bob", Text: "hi"},
		},
	}
	s := newFakeStore()
	n := &recordingNotifier{}

	stats, err := newPipeline(hn, s, n).Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.PostsFound != 1 {
		t.Errorf("PostsFound = %d, want 1", stats.PostsFound)
	}
	if stats.ItemsFetched != 2 {
		t.Errorf("ItemsFetched = %d, want 2", stats.ItemsFetched)
	}
	if stats.JobsParsed != 1 {
		t.Errorf("JobsParsed = %d, want 1 (the two-character comment is not a job)", stats.JobsParsed)
	}
	if stats.JobsInserted != 1 || stats.JobsUpdated != 0 {
		t.Errorf("inserted/updated = %d/%d, want 1/0", stats.JobsInserted, stats.JobsUpdated)
	}
	if s.upserts != 1 {
		t.Errorf("store received %d upsert batches, want 1", s.upserts)
	}
	if n.stats == nil {
		t.Fatal("notifier was not invoked")
	}
	if n.stats.JobsInserted != 1 {
		t.Errorf("notifier stats inserted = %d, want 1", n.stats.JobsInserted)
	}
}

func TestRun_ProbeFailureAborts(t *testing.T) {
	hn := &fakeHN{probeErr: errors.New("network down")}
	s := newFakeStore()

	_, err := newPipeline(hn, s, nil).Run(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error when the connectivity probe fails")
	}
	if s.upserts != 0 {
		t.Errorf("store touched despite failed probe: %d upserts", s.upserts)
	}
}

func TestRun_NoSourcesIsNotAnError(t *testing.T) {
	hn := &fakeHN{
		askIDs: []int64{10},
		items: map[int64]*model.Item{
			10: {ID: 10, Title: "Ask HN: favorite editor?"},
		},
	}
	stats, err := newPipeline(hn, newFakeStore(), nil).Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.PostsFound != 0 || stats.JobsParsed != 0 {
		t.Errorf("stats = %+v, want all-zero", stats)
	}
}

func TestRun_StoreFailureAborts(t *testing.T) {
	hn := &fakeHN{
		askIDs: []int64{10},
		items: map[int64]*model.Item{
			10: {ID: 10, Title: "Ask HN: Who is hiring? (August 2026)", Kids: []int64{11}},
			11: {ID: 11, By: "alice", Time: 1717200000,
				Text: "Acme Corp is hiring a Backend Engineer in Berlin. Remote OK."},
		},
	}
	s := newFakeStore()
	s.saveErr = errors.New("disk full")

	_, err := newPipeline(hn, s, nil).Run(context.Background(), 1)
	if err == nil {
		t.Fatal("expected storage failure to abort the run")
	}
}

func TestRun_RerunCountsUpdates(t *testing.T) {
	hn := &fakeHN{
		askIDs: []int64{10},
		items: map[int64]*model.Item{
			10: {ID: 10, Title: "Ask HN: Who is hiring? (August 2026)", Kids: []int64{11}},
			11: {ID: 11, By: "alice", Time: 1717200000,
				Text: "Acme Corp is hiring a Backend Engineer in Berlin. Remote OK."},
		},
	}
	s := newFakeStore()

	p := newPipeline(hn, s, nil)
	if _, err := p.Run(context.Background(), 1); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	stats, err := p.Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats.JobsInserted != 0 || stats.JobsUpdated != 1 {
		t.Errorf("second run inserted/updated = %d/%d, want 0/1", stats.JobsInserted, stats.JobsUpdated)
	}
}
