package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var _ InteractionsRepository = (*Repo)(nil)

// BookmarksFor returns which of the given ids the user has bookmarked.
func (r *Repo) BookmarksFor(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]BookmarkRef, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT content_type, content_id
		FROM bookmarks
		WHERE user_id = $1 AND content_id = ANY($2)`,
		userID, ids)
	if err != nil {
		return nil, fmt.Errorf("bookmarks for items: %w", err)
	}
	defer rows.Close()

	refs := make([]BookmarkRef, 0)
	for rows.Next() {
		var ref BookmarkRef
		if err := rows.Scan(&ref.ContentType, &ref.ContentID); err != nil {
			return nil, fmt.Errorf("scan bookmark ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookmarks for items: %w", err)
	}
	return refs, nil
}

// BookmarkedIDsByType returns every bookmark of the user grouped by content
// type.
func (r *Repo) BookmarkedIDsByType(ctx context.Context, userID uuid.UUID) (map[string][]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT content_type, content_id
		FROM bookmarks
		WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("bookmarked ids by type: %w", err)
	}
	defer rows.Close()

	byType := make(map[string][]uuid.UUID)
	for rows.Next() {
		var (
			contentType string
			contentID   uuid.UUID
		)
		if err := rows.Scan(&contentType, &contentID); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		byType[contentType] = append(byType[contentType], contentID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookmarked ids by type: %w", err)
	}
	return byType, nil
}

// QuestionStatsFor aggregates the user's attempt history over the given
// questions. Questions the user never attempted produce no row.
func (r *Repo) QuestionStatsFor(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]QuestionStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT question_id,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE is_correct),
		       COALESCE(SUM(time_spent_seconds), 0),
		       MAX(attempted_at)
		FROM quiz_question_attempts
		WHERE user_id = $1 AND question_id = ANY($2)
		GROUP BY question_id`,
		userID, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("question stats: %w", err)
	}
	defer rows.Close()

	stats := make([]QuestionStats, 0)
	for rows.Next() {
		var qs QuestionStats
		if err := rows.Scan(&qs.QuestionID, &qs.Attempts, &qs.Correct, &qs.TimeSpentSeconds, &qs.LastAttempted); err != nil {
			return nil, fmt.Errorf("scan question stats: %w", err)
		}
		stats = append(stats, qs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("question stats: %w", err)
	}
	return stats, nil
}
