package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hirewatch/internal/model"
)

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier posts one run-summary message to a Slack Incoming Webhook.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewSlackNotifier returns a notifier that posts run summaries to Slack.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

// Notify sends one summary message for the run. Nothing is sent for a run
// that parsed zero jobs.
func (s *SlackNotifier) Notify(stats model.RunStats, jobs []model.Job) error {
	if stats.JobsParsed == 0 {
		return nil
	}

	body, err := json.Marshal(slackPayload{Text: summaryText(stats, jobs)})
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("slack returned status %d: %s", resp.StatusCode, string(msg))
	}

	s.logger.Info("slack run summary sent", "jobs_parsed", stats.JobsParsed)
	return nil
}

// summaryText renders the run counts plus up to five job headlines.
func summaryText(stats model.RunStats, jobs []model.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job fetch complete: %d sources, %d items, %d jobs parsed (%d new, %d updated)",
		stats.PostsFound, stats.ItemsFetched, stats.JobsParsed, stats.JobsInserted, stats.JobsUpdated)

	shown := len(jobs)
	if shown > 5 {
		shown = 5
	}
	for _, j := range jobs[:shown] {
		company := j.Company
		if company == "" {
			company = "Unknown"
		}
		role := j.Role
		if role == "" {
			role = "Unknown"
		}
		fmt.Fprintf(&b, "\n• %s — %s <%s>", company, role, j.URL)
	}
	if len(jobs) > shown {
		fmt.Fprintf(&b, "\n…and %d more", len(jobs)-shown)
	}
	return b.String()
}
