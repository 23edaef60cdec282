package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"hirewatch/internal/model"
	"hirewatch/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// Ensure SQLiteStore implements JobStore.
var _ JobStore = (*SQLiteStore)(nil)

// SQLiteStore implements JobStore backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at path and runs pending migrations.
func Open(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One writer keeps the upsert transaction free of SQLITE_BUSY surprises.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Upsert writes the batch in one transaction. Existing rows (same item id)
// get their derived fields, flags, and keywords overwritten and updated_at
// bumped; created_at is preserved. Counts are exact: the row's existence is
// checked inside the transaction before writing.
func (s *SQLiteStore) Upsert(ctx context.Context, jobs []model.Job) (inserted, updated int, err error) {
	if len(jobs) == 0 {
		return 0, 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(timeLayout)

	for _, j := range jobs {
		keywords, err := json.Marshal(j.Keywords)
		if err != nil {
			return 0, 0, fmt.Errorf("encode keywords for item %d: %w", j.ItemID, err)
		}
		if j.Keywords == nil {
			keywords = []byte("[]")
		}

		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM jobs WHERE item_id = ?`, j.ItemID).Scan(&exists)
		switch {
		case err == sql.ErrNoRows:
			_, err = tx.ExecContext(ctx, `
				INSERT INTO jobs (
					item_id, parent_id, posted_by, posted_at, text, html_text, url,
					company, role, location, salary_info,
					is_remote, is_internship, is_new_grad, keywords,
					created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				j.ItemID, j.ParentID, j.PostedBy, j.PostedAt.UTC().Format(timeLayout),
				j.Text, j.HTMLText, j.URL,
				nullString(j.Company), nullString(j.Role), nullString(j.Location), nullString(j.Salary),
				boolToInt(j.IsRemote), boolToInt(j.IsInternship), boolToInt(j.IsNewGrad), string(keywords),
				now, now,
			)
			if err != nil {
				return 0, 0, fmt.Errorf("insert job %d: %w", j.ItemID, err)
			}
			inserted++

		case err != nil:
			return 0, 0, fmt.Errorf("check job %d: %w", j.ItemID, err)

		default:
			_, err = tx.ExecContext(ctx, `
				UPDATE jobs SET
					text = ?, html_text = ?, company = ?, role = ?, location = ?,
					salary_info = ?, is_remote = ?, is_internship = ?, is_new_grad = ?,
					keywords = ?, updated_at = ?
				WHERE item_id = ?`,
				j.Text, j.HTMLText,
				nullString(j.Company), nullString(j.Role), nullString(j.Location), nullString(j.Salary),
				boolToInt(j.IsRemote), boolToInt(j.IsInternship), boolToInt(j.IsNewGrad),
				string(keywords), now, j.ItemID,
			)
			if err != nil {
				return 0, 0, fmt.Errorf("update job %d: %w", j.ItemID, err)
			}
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit upsert: %w", err)
	}
	return inserted, updated, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool { return i != 0 }
