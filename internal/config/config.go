package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hirewatch/internal/hn"
)

// Config is the root configuration for hirewatch.
type Config struct {
	HN           HNConfig
	Database     DatabaseConfig
	Cache        CacheConfig
	Feeds        FeedsConfig
	Notification NotificationConfig
	Retry        RetryConfig
	Interval     time.Duration // scheduler interval between fetch cycles
}

// HNConfig controls the discussion-API traversal.
type HNConfig struct {
	BaseURL     string        // API endpoint, defaults to the public HN API
	APIDelay    time.Duration // minimum gap between comment batches
	SourceDelay time.Duration // minimum gap between hiring sources
	MaxComments int           // comments collected per source
	PostsLimit  int           // hiring sources processed per run
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CacheConfig controls the Redis cache. An empty Addr disables caching.
type CacheConfig struct {
	Addr     string
	DB       int
	QueryTTL time.Duration // how long search/stats results stay cached
}

// FeedsConfig lists the RSS feeds the aggregator boundary polls.
type FeedsConfig struct {
	URLs []string `yaml:"urls"`
}

// NotificationConfig controls which notifier reports run summaries.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// RetryConfig controls the fetch-boundary retry policy.
type RetryConfig struct {
	MaxRetries int           // additional attempts after the first failure
	BaseDelay  time.Duration // delay before the first retry, doubled per retry
}

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	HN           rawHNConfig        `yaml:"hn"`
	Database     DatabaseConfig     `yaml:"database"`
	Cache        rawCacheConfig     `yaml:"cache"`
	Feeds        FeedsConfig        `yaml:"feeds"`
	Notification NotificationConfig `yaml:"notification"`
	Retry        rawRetryConfig     `yaml:"retry"`
	Interval     string             `yaml:"interval"`
}

type rawHNConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIDelay    string `yaml:"api_delay"`
	SourceDelay string `yaml:"source_delay"`
	MaxComments int    `yaml:"max_comments"`
	PostsLimit  int    `yaml:"posts_limit"`
}

type rawCacheConfig struct {
	Addr     string `yaml:"addr"`
	DB       int    `yaml:"db"`
	QueryTTL string `yaml:"query_ttl"`
}

type rawRetryConfig struct {
	MaxRetries int    `yaml:"max_retries"`
	BaseDelay  string `yaml:"base_delay"`
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. Missing file or invalid settings are fatal; no pipeline
// work starts on a broken configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{
		HN: HNConfig{
			BaseURL:     raw.HN.BaseURL,
			MaxComments: raw.HN.MaxComments,
			PostsLimit:  raw.HN.PostsLimit,
		},
		Database:     raw.Database,
		Feeds:        raw.Feeds,
		Notification: raw.Notification,
		Cache: CacheConfig{
			Addr: raw.Cache.Addr,
			DB:   raw.Cache.DB,
		},
		Retry: RetryConfig{
			MaxRetries: raw.Retry.MaxRetries,
		},
	}

	if cfg.HN.BaseURL == "" {
		cfg.HN.BaseURL = hn.DefaultBaseURL
	}
	if cfg.HN.MaxComments == 0 {
		cfg.HN.MaxComments = 500
	}
	if cfg.HN.PostsLimit == 0 {
		cfg.HN.PostsLimit = 1
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "hirewatch.db"
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = 2
	}

	cfg.HN.APIDelay, err = parseDuration(raw.HN.APIDelay, 500*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("parse hn.api_delay %q: %w", raw.HN.APIDelay, err)
	}
	cfg.HN.SourceDelay, err = parseDuration(raw.HN.SourceDelay, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("parse hn.source_delay %q: %w", raw.HN.SourceDelay, err)
	}
	cfg.Cache.QueryTTL, err = parseDuration(raw.Cache.QueryTTL, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("parse cache.query_ttl %q: %w", raw.Cache.QueryTTL, err)
	}
	cfg.Retry.BaseDelay, err = parseDuration(raw.Retry.BaseDelay, time.Second)
	if err != nil {
		return nil, fmt.Errorf("parse retry.base_delay %q: %w", raw.Retry.BaseDelay, err)
	}
	cfg.Interval, err = parseDuration(raw.Interval, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("parse interval %q: %w", raw.Interval, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}

func validate(cfg *Config) error {
	if cfg.HN.PostsLimit < 1 {
		return fmt.Errorf("hn.posts_limit must be at least 1, got %d", cfg.HN.PostsLimit)
	}
	if cfg.HN.MaxComments < 1 {
		return fmt.Errorf("hn.max_comments must be at least 1, got %d", cfg.HN.MaxComments)
	}
	if cfg.HN.APIDelay < 0 || cfg.HN.SourceDelay < 0 {
		return fmt.Errorf("hn delays must not be negative")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", cfg.Interval)
	}
	if cfg.Retry.MaxRetries < 0 {
		return fmt.Errorf("retry.max_retries must not be negative, got %d", cfg.Retry.MaxRetries)
	}
	if cfg.Notification.Type == "slack" && cfg.Notification.WebhookURL == "" {
		return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
	}
	return nil
}
