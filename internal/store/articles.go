package store

import (
	"context"
	"fmt"
	"time"
)

// InsertArticle inserts an RSS article, deduplicating on URL. It returns
// true when a new row was written, false when the URL was already stored.
func (s *SQLiteStore) InsertArticle(ctx context.Context, a Article) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO articles (title, content, source, url, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.Title, a.Content, a.Source, a.URL, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert article: %w", err)
	}
	return n > 0, nil
}

// ListArticles returns stored articles, newest first, up to limit.
func (s *SQLiteStore) ListArticles(ctx context.Context, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content, source, url
		FROM articles
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Source, &a.URL); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return out, nil
}
