// Package notifier reports pipeline run outcomes to a log or a Slack channel.
package notifier

import (
	"log/slog"

	"hirewatch/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes the run summary and each parsed job to the given logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the run counts and a line per parsed job.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(stats model.RunStats, jobs []model.Job) error {
	n.logger.Info("run summary",
		"posts_found", stats.PostsFound,
		"items_fetched", stats.ItemsFetched,
		"jobs_parsed", stats.JobsParsed,
		"jobs_inserted", stats.JobsInserted,
		"jobs_updated", stats.JobsUpdated,
	)
	for _, j := range jobs {
		n.logger.Info("parsed job",
			"company", j.Company,
			"role", j.Role,
			"location", j.Location,
			"url", j.URL,
		)
	}
	return nil
}
