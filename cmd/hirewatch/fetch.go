package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var fetchPosts int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run one fetch cycle and exit",
	Long:  "Discover hiring sources, collect and parse their postings, store the results, then exit.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().IntVar(&fetchPosts, "posts", 0, "number of hiring sources to process (default: config posts_limit)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	httpClient := newHTTPClient()
	c := setupCache(ctx, cfg, logger)
	n := setupNotifier(cfg, httpClient, logger)
	pipe := buildPipeline(cfg, sqlStore, c, n, httpClient, logger)

	posts := cfg.HN.PostsLimit
	if fetchPosts > 0 {
		posts = fetchPosts
	}

	stats, err := pipe.Run(ctx, posts)
	if err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}

	logger.Info("fetch complete",
		"posts", stats.PostsFound,
		"items", stats.ItemsFetched,
		"parsed", stats.JobsParsed,
		"inserted", stats.JobsInserted,
		"updated", stats.JobsUpdated,
	)
	return nil
}
