package hn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirewatch/internal/model"
)

func TestItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/item/42.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"id":42,"type":"comment","by":"alice","time":1717200000,"text":"Acme is hiring","kids":[43,44]}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	item, err := c.Item(context.Background(), 42)
	if err != nil {
		t.Fatalf("Item: %v", err)
	}
	if item.ID != 42 || item.By != "alice" || item.Text != "Acme is hiring" {
		t.Errorf("item = %+v", item)
	}
	if len(item.Kids) != 2 {
		t.Errorf("Kids = %v, want 2 ids", item.Kids)
	}
}

func TestItem_NullBodyIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	_, err := c.Item(context.Background(), 999)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for null item, got %v", err)
	}
}

func TestItem_HTTPErrorCarriesStatusAndRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	_, err := c.Item(context.Background(), 1)
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", httpErr.StatusCode)
	}
	if httpErr.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", httpErr.RetryAfter)
	}
}

func TestStories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/askstories.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`[101,102,103]`))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	ids, err := c.Stories(context.Background(), KindAsk)
	if err != nil {
		t.Fatalf("Stories: %v", err)
	}
	if len(ids) != 3 || ids[0] != 101 {
		t.Errorf("ids = %v", ids)
	}
}

func TestMaxItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maxitem.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte("424242"))
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client())
	max, err := c.MaxItem(context.Background())
	if err != nil {
		t.Fatalf("MaxItem: %v", err)
	}
	if max != 424242 {
		t.Errorf("MaxItem = %d, want 424242", max)
	}
}

func TestItemURL(t *testing.T) {
	if got := ItemURL(42); got != "https://news.ycombinator.com/item?id=42" {
		t.Errorf("ItemURL(42) = %q", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"not-a-number", 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.in); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
