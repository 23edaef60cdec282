package feeds

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirewatch/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Engineering Blog</title>
    <item>
      <title>First post</title>
      <link>https://blog.test/first</link>
      <description>body one</description>
    </item>
    <item>
      <title>Second post</title>
      <link>https://blog.test/second</link>
      <description>body two</description>
    </item>
    <item>
      <title>No link, skipped</title>
      <description>orphan</description>
    </item>
  </channel>
</rss>`

// memStore collects inserted articles, deduplicating on URL.
type memStore struct {
	byURL map[string]store.Article
}

func newMemStore() *memStore {
	return &memStore{byURL: make(map[string]store.Article)}
}

func (s *memStore) InsertArticle(_ context.Context, a store.Article) (bool, error) {
	if _, ok := s.byURL[a.URL]; ok {
		return false, nil
	}
	s.byURL[a.URL] = a
	return true, nil
}

func TestFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	s := newMemStore()
	agg := NewAggregator(s, server.Client(), discardLogger())

	fetched, added, err := agg.FetchAll(context.Background(), []string{server.URL + "/feed"})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if fetched != 2 || added != 2 {
		t.Errorf("fetched/added = %d/%d, want 2/2 (linkless entry skipped)", fetched, added)
	}

	a, ok := s.byURL["https://blog.test/first"]
	if !ok {
		t.Fatal("first article not stored")
	}
	if a.Title != "First post" || a.Content != "body one" {
		t.Errorf("stored article = %+v", a)
	}
	if a.Source == "" {
		t.Error("article source host not recorded")
	}
}

func TestFetchAll_SecondRunAddsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	s := newMemStore()
	agg := NewAggregator(s, server.Client(), discardLogger())

	if _, _, err := agg.FetchAll(context.Background(), []string{server.URL}); err != nil {
		t.Fatalf("first FetchAll: %v", err)
	}
	fetched, added, err := agg.FetchAll(context.Background(), []string{server.URL})
	if err != nil {
		t.Fatalf("second FetchAll: %v", err)
	}
	if fetched != 2 || added != 0 {
		t.Errorf("second run fetched/added = %d/%d, want 2/0", fetched, added)
	}
}

func TestFetchAll_BrokenFeedSkipped(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()

	s := newMemStore()
	agg := NewAggregator(s, http.DefaultClient, discardLogger())

	fetched, added, err := agg.FetchAll(context.Background(), []string{bad.URL, good.URL})
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if fetched != 2 || added != 2 {
		t.Errorf("fetched/added = %d/%d, want the healthy feed's 2/2", fetched, added)
	}
}

func TestFeedHost(t *testing.T) {
	if got := feedHost("https://blog.test/feed"); got != "blog.test" {
		t.Errorf("feedHost = %q, want blog.test", got)
	}
	if got := feedHost("not a url"); got != "not a url" {
		t.Errorf("feedHost fallback = %q", got)
	}
}
