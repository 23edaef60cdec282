// Package parse extracts structured job fields from free-form posting text.
//
// Postings have no fixed schema, so every extractor is an ordered cascade of
// patterns tried from most to least specific; the first match wins and later
// patterns are not attempted. Extraction is best-effort: a field that no
// pattern matches stays empty rather than failing the posting.
package parse

import (
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"hirewatch/internal/model"
)

const (
	// minTextLength is the cleaned-text floor below which an item is never a job.
	minTextLength = 50
	// indicatorMinLength is the floor for accepting on job-indicator words alone.
	indicatorMinLength = 30
)

// jobIndicators is the vocabulary that lets a posting without an extracted
// company or role still pass as a job.
var jobIndicators = []string{
	"hiring", "job", "position", "role", "engineer", "developer", "intern",
	"remote", "salary", "looking for", "seeking", "apply",
}

// Parser turns raw items into Job records. It is stateless and pure: no
// network access, all lookups are compiled patterns and fixed vocabularies.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse extracts a Job from the item, or reports false when the item does not
// read as a job posting. Rejections are silent; they are not errors.
func (p *Parser) Parse(item model.RawItem) (*model.Job, bool) {
	if item.Text == "" {
		return nil, false
	}

	text := CleanHTML(item.Text)
	// Length floors count characters, not bytes, so non-ASCII text is not
	// over-counted.
	length := utf8.RuneCountInString(text)
	if length < minTextLength {
		p.logger.Debug("item too short, skipping", "id", item.ID, "length", length)
		return nil, false
	}

	lower := strings.ToLower(text)

	job := &model.Job{
		ItemID:       item.ID,
		ParentID:     item.ParentID,
		PostedBy:     item.By,
		PostedAt:     time.Unix(item.Time, 0).UTC(),
		Text:         text,
		HTMLText:     item.Text,
		URL:          item.URL,
		Company:      extractCompany(text),
		Role:         extractRole(text),
		Location:     extractLocation(text),
		Salary:       extractSalary(text),
		IsRemote:     containsAny(lower, remoteKeywords),
		IsInternship: containsAny(lower, internKeywords),
		IsNewGrad:    containsAny(lower, newGradKeywords),
		Keywords:     extractKeywords(lower),
	}

	if job.Company != "" || job.Role != "" {
		return job, true
	}
	if containsAny(lower, jobIndicators) && length > indicatorMinLength {
		return job, true
	}

	p.logger.Debug("item rejected, no company, role, or job indicators", "id", item.ID)
	return nil, false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
