package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hirewatch/internal/model"
)

// Search returns jobs matching the query's filters, ordered by posted_at
// descending and truncated to q.Limit when positive. Every filter is
// optional; zero values are ignored.
func (s *SQLiteStore) Search(ctx context.Context, q model.Query) ([]model.Job, error) {
	query := `SELECT item_id, parent_id, posted_by, posted_at, text, html_text, url,
		company, role, location, salary_info,
		is_remote, is_internship, is_new_grad, keywords,
		created_at, updated_at
		FROM jobs WHERE 1=1`
	var args []any

	if q.Internship {
		query += " AND is_internship = 1"
	}
	if q.NewGrad {
		query += " AND is_new_grad = 1"
	}
	if q.Remote {
		query += " AND is_remote = 1"
	}
	if q.Company != "" {
		query += " AND company LIKE ?"
		args = append(args, "%"+q.Company+"%")
	}
	if q.Location != "" {
		query += " AND location LIKE ?"
		args = append(args, "%"+q.Location+"%")
	}
	if len(q.Keywords) > 0 {
		placeholders := strings.Repeat("?,", len(q.Keywords))
		placeholders = placeholders[:len(placeholders)-1]
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM json_each(jobs.keywords) WHERE json_each.value IN (%s))",
			placeholders,
		)
		for _, kw := range q.Keywords {
			args = append(args, strings.ToLower(kw))
		}
	}
	if q.Days > 0 {
		cutoff := time.Now().UTC().AddDate(0, 0, -q.Days).Format(timeLayout)
		query += " AND posted_at >= ?"
		args = append(args, cutoff)
	}
	if q.Year > 0 {
		query += " AND strftime('%Y', posted_at) = ?"
		args = append(args, fmt.Sprintf("%04d", q.Year))
	}
	if q.YCCohortYear > 0 {
		// YC batch tokens ("YC S24", "YC W24") in the raw posting text are the
		// only durable trace of the cohort; match either season for the year.
		yy := fmt.Sprintf("%02d", q.YCCohortYear%100)
		query += " AND (html_text LIKE ? OR html_text LIKE ?)"
		args = append(args, "%S"+yy+"%", "%W"+yy+"%")
	}

	query += " ORDER BY posted_at DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	return jobs, nil
}

func scanJob(rows *sql.Rows) (model.Job, error) {
	var (
		j                               model.Job
		postedAt, createdAt, updatedAt  string
		company, role, location, salary sql.NullString
		remote, internship, newGrad     int
		keywords                        string
	)
	err := rows.Scan(
		&j.ItemID, &j.ParentID, &j.PostedBy, &postedAt, &j.Text, &j.HTMLText, &j.URL,
		&company, &role, &location, &salary,
		&remote, &internship, &newGrad, &keywords,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return model.Job{}, fmt.Errorf("scan job: %w", err)
	}

	j.Company = company.String
	j.Role = role.String
	j.Location = location.String
	j.Salary = salary.String
	j.IsRemote = intToBool(remote)
	j.IsInternship = intToBool(internship)
	j.IsNewGrad = intToBool(newGrad)
	j.PostedAt, _ = time.Parse(timeLayout, postedAt)
	j.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	j.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	if err := json.Unmarshal([]byte(keywords), &j.Keywords); err != nil {
		return model.Job{}, fmt.Errorf("decode keywords for job %d: %w", j.ItemID, err)
	}
	return j, nil
}
