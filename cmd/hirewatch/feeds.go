package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hirewatch/internal/feeds"
)

var feedsListLimit int

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Fetch configured RSS feeds once",
	Long:  "Fetch every configured feed, store new articles, and print a summary.",
	RunE:  runFeeds,
}

var feedsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print stored articles",
	RunE:  runFeedsList,
}

func init() {
	feedsListCmd.Flags().IntVar(&feedsListLimit, "limit", 50, "maximum articles to print")
	feedsCmd.AddCommand(feedsListCmd)
	rootCmd.AddCommand(feedsCmd)
}

func runFeeds(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if len(cfg.Feeds.URLs) == 0 {
		logger.Error("no feeds configured, add feeds.urls to the config")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	agg := feeds.NewAggregator(sqlStore, newHTTPClient(), logger)
	fetched, added, err := agg.FetchAll(ctx, cfg.Feeds.URLs)
	if err != nil {
		logger.Error("feed fetch failed", "error", err)
		os.Exit(1)
	}

	logger.Info("feeds fetched", "entries", fetched, "new_articles", added)
	return nil
}

func runFeedsList(cmd *cobra.Command, args []string) error {
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

	articles, err := sqlStore.ListArticles(ctx, feedsListLimit)
	if err != nil {
		logger.Error("failed to list articles", "error", err)
		os.Exit(1)
	}

	for _, a := range articles {
		fmt.Printf("%s\n  %s  %s\n\n", a.Title, a.Source, a.URL)
	}
	fmt.Printf("%d article(s)\n", len(articles))
	return nil
}
