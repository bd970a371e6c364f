package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ HistoryRepository = (*Repo)(nil)

// RecordSearch appends one history row. History is append-only.
func (r *Repo) RecordSearch(ctx context.Context, userID uuid.UUID, query string, resultCount int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO search_history (user_id, query, result_count)
		VALUES ($1, $2, $3)`,
		userID, query, resultCount)
	if err != nil {
		return fmt.Errorf("record search: %w", err)
	}
	return nil
}

// ListHistory returns the user's most recent searches.
func (r *Repo) ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query, result_count, searched_at
		FROM search_history
		WHERE user_id = $1
		ORDER BY searched_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	return scanHistoryEntries(rows)
}

// ListHistorySince returns the user's searches inside the window, most
// recent first.
func (r *Repo) ListHistorySince(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query, result_count, searched_at
		FROM search_history
		WHERE user_id = $1 AND searched_at >= $2
		ORDER BY searched_at DESC
		LIMIT $3`,
		userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list search history since: %w", err)
	}
	return scanHistoryEntries(rows)
}

func scanHistoryEntries(rows pgx.Rows) ([]HistoryEntry, error) {
	defer rows.Close()
	entries := make([]HistoryEntry, 0)
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Query, &e.ResultCount, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history entries: %w", err)
	}
	return entries, nil
}

// RecentQueriesMatching returns the most recently used distinct queries
// containing the partial.
func (r *Repo) RecentQueriesMatching(ctx context.Context, partial string, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT query FROM (
			SELECT DISTINCT ON (lower(query)) query, searched_at
			FROM search_history
			WHERE query ILIKE $1
			ORDER BY lower(query), searched_at DESC
		) recent
		ORDER BY searched_at DESC
		LIMIT $2`,
		"%"+partial+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("recent queries matching: %w", err)
	}
	defer rows.Close()

	queries := make([]string, 0)
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scan recent query: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent queries matching: %w", err)
	}
	return queries, nil
}

// TrendingQueries groups searches in the window by normalized query.
func (r *Repo) TrendingQueries(ctx context.Context, since time.Time, limit int) ([]QueryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT lower(query) AS q, COUNT(*) AS n
		FROM search_history
		WHERE searched_at >= $1
		GROUP BY q
		ORDER BY n DESC, q ASC
		LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("trending queries: %w", err)
	}
	return scanQueryCounts(rows)
}

func scanQueryCounts(rows pgx.Rows) ([]QueryCount, error) {
	defer rows.Close()
	counts := make([]QueryCount, 0)
	for rows.Next() {
		var qc QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("scan query count: %w", err)
		}
		counts = append(counts, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query counts: %w", err)
	}
	return counts, nil
}

// DailyVolume groups searches in the window by calendar day.
func (r *Repo) DailyVolume(ctx context.Context, since time.Time) ([]DayCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date_trunc('day', searched_at) AS day, COUNT(*) AS n
		FROM search_history
		WHERE searched_at >= $1
		GROUP BY day
		ORDER BY day ASC`,
		since)
	if err != nil {
		return nil, fmt.Errorf("daily search volume: %w", err)
	}
	defer rows.Close()

	counts := make([]DayCount, 0)
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan daily volume: %w", err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily search volume: %w", err)
	}
	return counts, nil
}

// ZeroResultQueries returns distinct normalized queries that produced no
// results inside the window.
func (r *Repo) ZeroResultQueries(ctx context.Context, since time.Time, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT lower(query) AS q
		FROM search_history
		WHERE searched_at >= $1 AND result_count = 0
		ORDER BY q ASC
		LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("zero result queries: %w", err)
	}
	defer rows.Close()

	queries := make([]string, 0)
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("scan zero result query: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("zero result queries: %w", err)
	}
	return queries, nil
}

// AbandonedQueries returns queries a single user repeated more than
// minRepeats times inside the window, summed across users.
func (r *Repo) AbandonedQueries(ctx context.Context, since time.Time, minRepeats, limit int) ([]QueryCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT q, SUM(n) AS total FROM (
			SELECT user_id, lower(query) AS q, COUNT(*) AS n
			FROM search_history
			WHERE searched_at >= $1
			GROUP BY user_id, lower(query)
			HAVING COUNT(*) > $2
		) repeated
		GROUP BY q
		ORDER BY total DESC, q ASC
		LIMIT $3`,
		since, minRepeats, limit)
	if err != nil {
		return nil, fmt.Errorf("abandoned queries: %w", err)
	}
	return scanQueryCounts(rows)
}

// RecentQuizAttempts returns the user's latest quiz attempts, newest first.
func (r *Repo) RecentQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]QuizAttemptSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, difficulty
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]QuizAttemptSummary, 0)
	for rows.Next() {
		var a QuizAttemptSummary
		if err := rows.Scan(&a.Category, &a.Difficulty); err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent quiz attempts: %w", err)
	}
	return attempts, nil
}
