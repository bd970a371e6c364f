package repository

import (
	"context"
	"fmt"
	"time"
)

var _ FeedbackRepository = (*Repo)(nil)

// RecordFeedback appends one feedback row. The rating range is enforced by
// the service and again by a table constraint.
func (r *Repo) RecordFeedback(ctx context.Context, params CreateFeedbackParams) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO search_feedback (user_id, query, result_id, rating, feedback, was_helpful)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		params.UserID, params.Query, params.ResultID, params.Rating, params.Feedback, params.WasHelpful)
	if err != nil {
		return fmt.Errorf("record search feedback: %w", err)
	}
	return nil
}

// Stats aggregates feedback submitted inside the window.
func (r *Repo) Stats(ctx context.Context, since time.Time) (FeedbackStats, error) {
	var stats FeedbackStats
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(rating), 0)::FLOAT8,
		       COALESCE(AVG(CASE WHEN was_helpful THEN 100.0 ELSE 0.0 END), 0)::FLOAT8,
		       COUNT(*)
		FROM search_feedback
		WHERE created_at >= $1`,
		since).Scan(&stats.AverageRating, &stats.HelpfulPercentage, &stats.Total)
	if err != nil {
		return FeedbackStats{}, fmt.Errorf("feedback stats: %w", err)
	}
	return stats, nil
}
