package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"hirewatch/internal/cache"
	"hirewatch/internal/collect"
	"hirewatch/internal/config"
	"hirewatch/internal/discover"
	"hirewatch/internal/hn"
	"hirewatch/internal/model"
	"hirewatch/internal/notifier"
	"hirewatch/internal/parse"
	"hirewatch/internal/pipeline"
	"hirewatch/internal/ratelimit"
	"hirewatch/internal/retry"
	"hirewatch/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "hirewatch",
	Short: "Hiring-thread watcher for Hacker News",
	Long:  "HireWatch collects job postings from monthly \"Who is hiring?\" threads,\nextracts structured fields, and keeps them searchable in a local database.",
	// Default to `start` so that `hirewatch` with no args runs the daemon.
	// This preserves compatibility with systemd unit files that invoke the binary directly.
	RunE: runStart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: HIREWATCH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > HIREWATCH_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("HIREWATCH_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

func setupCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) model.Cache {
	if cfg.Cache.Addr == "" {
		logger.Info("no cache address configured, caching disabled")
		return cache.NewNopCache()
	}
	return cache.New(ctx, cfg.Cache.Addr, cfg.Cache.DB, logger)
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// buildPipeline wires the fetch pipeline: retrying HN client, batch and
// source pacers, discoverer, collector, and parser.
func buildPipeline(cfg *config.Config, jobStore store.JobStore, c model.Cache, n model.Notifier, httpClient *http.Client, logger *slog.Logger) *pipeline.Pipeline {
	client := hn.NewClient(cfg.HN.BaseURL, httpClient)
	fetcher := retry.NewFetcher(client, cfg.Retry.MaxRetries, cfg.Retry.BaseDelay, logger)

	batchPacer := ratelimit.NewPacer(cfg.HN.APIDelay)
	sourcePacer := ratelimit.NewPacer(cfg.HN.SourceDelay)

	d := discover.NewDiscoverer(fetcher, c, logger)
	col := collect.NewCollector(fetcher, batchPacer, logger)
	p := parse.NewParser(logger)

	return pipeline.New(client, d, col, p, jobStore, n, sourcePacer, cfg.HN.MaxComments, logger)
}

func openStore(cfg *config.Config, logger *slog.Logger) *store.SQLiteStore {
	sqlStore, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	return sqlStore
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
