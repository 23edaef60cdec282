package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hirewatch/internal/feeds"
	"hirewatch/internal/scheduler"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the fetch daemon",
	Long:  "Start the scheduler daemon; runs a fetch cycle immediately and then on every interval. Blocks until SIGINT/SIGTERM.",
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"interval", cfg.Interval.String(),
		"posts_limit", cfg.HN.PostsLimit,
		"max_comments", cfg.HN.MaxComments,
		"db", cfg.Database.Path,
		"feeds", len(cfg.Feeds.URLs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	httpClient := newHTTPClient()
	c := setupCache(ctx, cfg, logger)
	n := setupNotifier(cfg, httpClient, logger)
	pipe := buildPipeline(cfg, sqlStore, c, n, httpClient, logger)

	tasks := []scheduler.Task{
		{
			Name: "fetch-jobs",
			Run: func(ctx context.Context) error {
				_, err := pipe.Run(ctx, cfg.HN.PostsLimit)
				return err
			},
		},
	}

	if len(cfg.Feeds.URLs) > 0 {
		agg := feeds.NewAggregator(sqlStore, httpClient, logger)
		tasks = append(tasks, scheduler.Task{
			Name: "fetch-feeds",
			Run: func(ctx context.Context) error {
				_, _, err := agg.FetchAll(ctx, cfg.Feeds.URLs)
				return err
			},
		})
	}

	sched := scheduler.NewScheduler(tasks, cfg.Interval, logger)
	if err := sched.Run(ctx); err != nil {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}

	logger.Info("goodbye")
	return nil
}
