package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hirewatch/internal/pipeline"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregates over stored postings",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	c := setupCache(ctx, cfg, logger)
	qs := pipeline.NewQueryService(sqlStore, c, cfg.Cache.QueryTTL, logger)

	stats, err := qs.Stats(ctx)
	if err != nil {
		logger.Error("stats failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("total postings:  %d\n", stats.TotalJobs)
	fmt.Printf("internships:     %d\n", stats.Internships)
	fmt.Printf("new grad:        %d\n", stats.NewGrad)
	fmt.Printf("remote:          %d\n", stats.Remote)

	if len(stats.TopCompanies) > 0 {
		fmt.Println("\ntop companies:")
		for _, c := range stats.TopCompanies {
			fmt.Printf("  %4d  %s\n", c.Count, c.Company)
		}
	}
	if len(stats.TopKeywords) > 0 {
		fmt.Println("\ntop keywords:")
		for _, k := range stats.TopKeywords {
			fmt.Printf("  %4d  %s\n", k.Count, k.Keyword)
		}
	}
	if len(stats.JobsByDay) > 0 {
		fmt.Println("\npostings by day (last 30 days):")
		for _, d := range stats.JobsByDay {
			fmt.Printf("  %s  %d\n", d.Day, d.Count)
		}
	}
	return nil
}
