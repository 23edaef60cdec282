package collect

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"hirewatch/internal/model"
	"hirewatch/internal/ratelimit"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFetcher struct {
	items map[int64]*model.Item
}

func (f *fakeFetcher) Item(_ context.Context, id int64) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return item, nil
}

func (f *fakeFetcher) Stories(context.Context, string) ([]int64, error) {
	return nil, nil
}

func newCollector(items map[int64]*model.Item) *Collector {
	return NewCollector(&fakeFetcher{items: items}, ratelimit.NewPacer(time.Millisecond), discardLogger())
}

func TestCollect_CommunityThreadComments(t *testing.T) {
	items := map[int64]*model.Item{
		100: {ID: 100, Title: "Ask HN: Who is hiring?", Kids: []int64{1, 2, 3, 4, 5}},
		1:   {ID: 1, By: "alice", Time: 1717200000, Text: "Acme is hiring"},
		2:   {ID: 2, Deleted: true, Text: "gone"},
		3:   {ID: 3, Dead: true, Text: "dead"},
		4:   {ID: 4, By: "bob", Text: ""},
		5:   {ID: 5, By: "carol", Text: "Globex is hiring"},
	}
	c := newCollector(items)

	source := model.HiringSource{ID: 100, Type: model.SourceCommunityThread}
	got, err := c.Collect(context.Background(), source, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 usable items, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 5 {
		t.Errorf("item ids = [%d %d], want listing order [1 5]", got[0].ID, got[1].ID)
	}
	for _, item := range got {
		if item.ParentID != 100 {
			t.Errorf("item %d ParentID = %d, want source id 100", item.ID, item.ParentID)
		}
		if item.URL == "" {
			t.Errorf("item %d missing discussion URL", item.ID)
		}
	}
}

func TestCollect_MaxItemsCap(t *testing.T) {
	items := map[int64]*model.Item{
		100: {ID: 100, Kids: []int64{1, 2, 3}},
		1:   {ID: 1, Text: "first"},
		2:   {ID: 2, Text: "second"},
		3:   {ID: 3, Text: "third"},
	}
	c := newCollector(items)

	got, err := c.Collect(context.Background(), model.HiringSource{ID: 100}, 2)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected maxItems cap of 2, got %d items", len(got))
	}
}

func TestCollect_IndividualPostingUsesPostBody(t *testing.T) {
	items := map[int64]*model.Item{
		200: {
			ID:   200,
			By:   "founder",
			Time: 1717200000,
			Text: "We are hiring a platform engineer.",
			URL:  "https://globex.test/jobs",
		},
	}
	c := newCollector(items)

	source := model.HiringSource{ID: 200, Type: model.SourceIndividualPosting, ItemIDs: []int64{200}}
	got, err := c.Collect(context.Background(), source, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the post itself as single item, got %d", len(got))
	}
	item := got[0]
	if item.ID != 200 || item.ParentID != 200 {
		t.Errorf("item = %d parent %d, want self-referencing 200/200", item.ID, item.ParentID)
	}
	if item.Text != "We are hiring a platform engineer." {
		t.Errorf("Text = %q, want the post body", item.Text)
	}
	if item.URL != "https://globex.test/jobs" {
		t.Errorf("URL = %q, want the post's link", item.URL)
	}
}

func TestCollect_IndividualPostingFallsBackToTitle(t *testing.T) {
	items := map[int64]*model.Item{
		201: {ID: 201, Title: "Initech is hiring a kernel engineer", URL: "https://initech.test"},
	}
	c := newCollector(items)

	got, err := c.Collect(context.Background(), model.HiringSource{ID: 201}, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Text != "Initech is hiring a kernel engineer" {
		t.Errorf("Text = %q, want title fallback", got[0].Text)
	}
}

func TestCollect_MissingCommentsSkipped(t *testing.T) {
	items := map[int64]*model.Item{
		100: {ID: 100, Kids: []int64{1, 2}},
		2:   {ID: 2, Text: "still here"},
	}
	c := newCollector(items)

	got, err := c.Collect(context.Background(), model.HiringSource{ID: 100}, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected only the fetchable comment, got %+v", got)
	}
}

func TestCollect_SourceFetchFailure(t *testing.T) {
	c := newCollector(map[int64]*model.Item{})

	if _, err := c.Collect(context.Background(), model.HiringSource{ID: 999}, 500); err == nil {
		t.Fatal("expected error when the source itself cannot be fetched")
	}
}

func TestCollect_BatchesLargeThreads(t *testing.T) {
	kids := make([]int64, 65)
	items := map[int64]*model.Item{}
	for i := range kids {
		id := int64(i + 1)
		kids[i] = id
		items[id] = &model.Item{ID: id, Text: "posting"}
	}
	items[100] = &model.Item{ID: 100, Kids: kids}
	c := newCollector(items)

	got, err := c.Collect(context.Background(), model.HiringSource{ID: 100}, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	// Three batches (30 + 30 + 5) with pacing in between, all items returned.
	if len(got) != 65 {
		t.Fatalf("expected all 65 items across batches, got %d", len(got))
	}
}

func TestCollect_PacesFromTheFirstBatchBoundary(t *testing.T) {
	kids := make([]int64, 35)
	items := map[int64]*model.Item{}
	for i := range kids {
		id := int64(i + 1)
		kids[i] = id
		items[id] = &model.Item{ID: id, Text: "posting"}
	}
	items[100] = &model.Item{ID: 100, Kids: kids}
	c := NewCollector(&fakeFetcher{items: items}, ratelimit.NewPacer(60*time.Millisecond), discardLogger())

	// Two batches (30 + 5); the delay applies between them even though this
	// is the pacer scope's first use.
	start := time.Now()
	got, err := c.Collect(context.Background(), model.HiringSource{ID: 100}, 500)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 35 {
		t.Fatalf("expected 35 items, got %d", len(got))
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("collection took %v, want at least the 60ms batch delay", elapsed)
	}
}
