package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the bookmarks repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bookmarks repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// Toggle flips the bookmark in one transaction and reports the new state.
func (r *Repo) Toggle(ctx context.Context, userID uuid.UUID, contentType string, contentID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin toggle bookmark: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		DELETE FROM bookmarks
		WHERE user_id = $1 AND content_type = $2 AND content_id = $3`,
		userID, contentType, contentID)
	if err != nil {
		return false, fmt.Errorf("remove bookmark: %w", err)
	}

	bookmarked := false
	if result.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO bookmarks (user_id, content_type, content_id)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`,
			userID, contentType, contentID); err != nil {
			return false, fmt.Errorf("add bookmark: %w", err)
		}
		bookmarked = true
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit toggle bookmark: %w", err)
	}
	return bookmarked, nil
}

// List retrieves the user's bookmarks, most recent first.
func (r *Repo) List(ctx context.Context, params ListBookmarksParams) ([]Bookmark, int, error) {
	whereClauses := []string{"user_id = $1"}
	args := []interface{}{params.UserID}
	argIdx := 2

	if params.ContentType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("content_type = $%d", argIdx))
		args = append(args, params.ContentType)
		argIdx++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM bookmarks WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bookmarks: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT user_id, content_type, content_id, created_at
		FROM bookmarks
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	items := make([]Bookmark, 0)
	for rows.Next() {
		var b Bookmark
		if err := rows.Scan(&b.UserID, &b.ContentType, &b.ContentID, &b.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan bookmark: %w", err)
		}
		items = append(items, b)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate bookmarks: %w", rows.Err())
	}

	return items, total, nil
}
