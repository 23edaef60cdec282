package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hirewatch/internal/hn"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe API connectivity and exit",
	Long:  "Hit the discussion API's max-item endpoint to verify connectivity. Writes nothing.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := hn.NewClient(cfg.HN.BaseURL, newHTTPClient())
	maxItem, err := client.MaxItem(ctx)
	if err != nil {
		logger.Error("API unreachable", "base_url", cfg.HN.BaseURL, "error", err)
		os.Exit(1)
	}

	logger.Info("API reachable", "base_url", cfg.HN.BaseURL, "max_item", maxItem)
	return nil
}
