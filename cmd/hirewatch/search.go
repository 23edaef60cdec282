package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"hirewatch/internal/model"
	"hirewatch/internal/pipeline"
)

var searchFlags struct {
	internship bool
	newGrad    bool
	remote     bool
	company    string
	location   string
	keywords   []string
	days       int
	year       int
	ycYear     int
	limit      int
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored job postings",
	Long:  "Search stored postings with ANDed filters; results come from the query cache when fresh.",
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.BoolVar(&searchFlags.internship, "internship", false, "only internships")
	f.BoolVar(&searchFlags.newGrad, "new-grad", false, "only new-grad roles")
	f.BoolVar(&searchFlags.remote, "remote", false, "only remote-friendly postings")
	f.StringVar(&searchFlags.company, "company", "", "company name substring")
	f.StringVar(&searchFlags.location, "location", "", "location substring")
	f.StringSliceVar(&searchFlags.keywords, "keyword", nil, "technology keyword (repeatable, any-of)")
	f.IntVar(&searchFlags.days, "days", 0, "only postings from the last N days")
	f.IntVar(&searchFlags.year, "year", 0, "only postings from this calendar year")
	f.IntVar(&searchFlags.ycYear, "yc-year", 0, "only YC companies from this batch year")
	f.IntVar(&searchFlags.limit, "limit", 50, "maximum results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	jobs, err := qs.Search(ctx, model.Query{
		Internship:   searchFlags.internship,
		NewGrad:      searchFlags.newGrad,
		Remote:       searchFlags.remote,
		Company:      searchFlags.company,
		Location:     searchFlags.location,
		Keywords:     searchFlags.keywords,
		Days:         searchFlags.days,
		Year:         searchFlags.year,
		YCCohortYear: searchFlags.ycYear,
		Limit:        searchFlags.limit,
	})
	if err != nil {
		logger.Error("search failed", "error", err)
		os.Exit(1)
	}

	if len(jobs) == 0 {
		fmt.Println("no postings match")
		return nil
	}

	for _, j := range jobs {
		printJob(j)
	}
	fmt.Printf("%d posting(s)\n", len(jobs))
	return nil
}

func printJob(j model.Job) {
	header := orDash(j.Company)
	if j.Role != "" {
		header += " | " + j.Role
	}
	fmt.Printf("%s\n", header)
	fmt.Printf("  posted %s by %s\n", j.PostedAt.Format("2006-01-02"), orDash(j.PostedBy))

	var details []string
	if j.Location != "" {
		details = append(details, j.Location)
	}
	if j.Salary != "" {
		details = append(details, j.Salary)
	}
	if j.IsRemote {
		details = append(details, "remote")
	}
	if j.IsInternship {
		details = append(details, "internship")
	}
	if j.IsNewGrad {
		details = append(details, "new grad")
	}
	if len(details) > 0 {
		fmt.Printf("  %s\n", strings.Join(details, " · "))
	}
	if len(j.Keywords) > 0 {
		fmt.Printf("  keywords: %s\n", strings.Join(j.Keywords, ", "))
	}
	fmt.Printf("  %s\n\n", j.URL)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
