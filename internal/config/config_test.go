package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
hn:
  api_delay: 250ms
  source_delay: 1s
  max_comments: 200
  posts_limit: 3
database:
  path: /tmp/jobs.db
cache:
  addr: localhost:6379
  db: 1
  query_ttl: 30m
feeds:
  urls:
    - https://hnrss.org/jobs
notification:
  type: log
interval: 2h
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HN.APIDelay != 250*time.Millisecond {
		t.Errorf("APIDelay = %v, want 250ms", cfg.HN.APIDelay)
	}
	if cfg.HN.SourceDelay != time.Second {
		t.Errorf("SourceDelay = %v, want 1s", cfg.HN.SourceDelay)
	}
	if cfg.HN.MaxComments != 200 || cfg.HN.PostsLimit != 3 {
		t.Errorf("HN = %+v", cfg.HN)
	}
	if cfg.Database.Path != "/tmp/jobs.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Cache.Addr != "localhost:6379" || cfg.Cache.DB != 1 || cfg.Cache.QueryTTL != 30*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if len(cfg.Feeds.URLs) != 1 || cfg.Feeds.URLs[0] != "https://hnrss.org/jobs" {
		t.Errorf("Feeds.URLs = %v", cfg.Feeds.URLs)
	}
	if cfg.Interval != 2*time.Hour {
		t.Errorf("Interval = %v, want 2h", cfg.Interval)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
notification:
  type: log
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HN.BaseURL == "" {
		t.Error("expected default HN base URL")
	}
	if cfg.HN.APIDelay != 500*time.Millisecond {
		t.Errorf("APIDelay = %v, want 500ms default", cfg.HN.APIDelay)
	}
	if cfg.HN.MaxComments != 500 {
		t.Errorf("MaxComments = %d, want 500 default", cfg.HN.MaxComments)
	}
	if cfg.HN.PostsLimit != 1 {
		t.Errorf("PostsLimit = %d, want 1 default", cfg.HN.PostsLimit)
	}
	if cfg.Cache.QueryTTL != time.Hour {
		t.Errorf("QueryTTL = %v, want 1h default", cfg.Cache.QueryTTL)
	}
	if cfg.Interval != time.Hour {
		t.Errorf("Interval = %v, want 1h default", cfg.Interval)
	}
	if cfg.Database.Path != "hirewatch.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "hn: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
hn:
  api_delay: soon
`))
	if err == nil {
		t.Fatal("Load: expected error for unparseable duration")
	}
}

func TestLoad_SlackRequiresWebhook(t *testing.T) {
	_, err := Load(writeConfig(t, `
notification:
  type: slack
`))
	if err == nil {
		t.Fatal("Load: expected validation error for slack without webhook_url")
	}
}

func TestLoad_NegativePostsLimit(t *testing.T) {
	_, err := Load(writeConfig(t, `
hn:
  posts_limit: -1
`))
	if err == nil {
		t.Fatal("Load: expected validation error for negative posts_limit")
	}
}
