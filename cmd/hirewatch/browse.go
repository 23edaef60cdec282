package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"hirewatch/internal/browse"
	"hirewatch/internal/model"
	"hirewatch/internal/pipeline"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse stored postings interactively",
	Long:  "Open a terminal UI listing stored postings newest first, with a detail view per posting.",
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().IntVar(&browseLimit, "limit", 200, "maximum postings to load")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sqlStore := openStore(cfg, logger)
	defer sqlStore.Close()

	c := setupCache(cmd.Context(), cfg, logger)
	qs := pipeline.NewQueryService(sqlStore, c, cfg.Cache.QueryTTL, logger)

	jobs, err := browse.RunLoader(func(ctx context.Context) ([]model.Job, error) {
		return qs.Search(ctx, model.Query{Limit: browseLimit})
	})
	if err != nil {
		logger.Error("failed to load postings", "error", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		logger.Info("no postings stored yet, run `hirewatch fetch` first")
		return nil
	}

	return browse.Run(jobs)
}
