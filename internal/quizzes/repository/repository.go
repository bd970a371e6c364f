package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/platform/apperr"
)

// Repo implements the quiz attempts repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new quiz attempts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// CreateAttempt records a quiz attempt and its per-question results in one
// transaction.
func (r *Repo) CreateAttempt(ctx context.Context, params CreateAttemptParams) (QuizAttempt, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return QuizAttempt{}, fmt.Errorf("begin create attempt: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	score := 0
	for _, q := range params.Questions {
		if q.IsCorrect {
			score++
		}
	}

	var attempt QuizAttempt
	err = tx.QueryRow(ctx, `
		INSERT INTO quiz_attempts (user_id, category, difficulty, score, total_questions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, category, difficulty, score, total_questions, completed_at`,
		params.UserID, params.Category, params.Difficulty, score, len(params.Questions),
	).Scan(
		&attempt.ID, &attempt.UserID, &attempt.Category, &attempt.Difficulty,
		&attempt.Score, &attempt.TotalQuestions, &attempt.CompletedAt,
	)
	if err != nil {
		return QuizAttempt{}, fmt.Errorf("create quiz attempt: %w", err)
	}

	for _, q := range params.Questions {
		if _, err := tx.Exec(ctx, `
			INSERT INTO quiz_question_attempts (user_id, question_id, quiz_attempt_id, is_correct, time_spent_seconds)
			VALUES ($1, $2, $3, $4, $5)`,
			params.UserID, q.QuestionID, attempt.ID, q.IsCorrect, q.TimeSpentSeconds,
		); err != nil {
			if isForeignKeyViolation(err) {
				return QuizAttempt{}, apperr.Validation(fmt.Sprintf("unknown question %s", q.QuestionID))
			}
			return QuizAttempt{}, fmt.Errorf("create question attempt: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return QuizAttempt{}, fmt.Errorf("commit create attempt: %w", err)
	}
	return attempt, nil
}

// ListAttempts returns the user's attempts, most recent first.
func (r *Repo) ListAttempts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]QuizAttempt, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quiz attempts: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, category, difficulty, score, total_questions, completed_at
		FROM quiz_attempts
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list quiz attempts: %w", err)
	}
	defer rows.Close()

	items := make([]QuizAttempt, 0)
	for rows.Next() {
		var a QuizAttempt
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Category, &a.Difficulty,
			&a.Score, &a.TotalQuestions, &a.CompletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan quiz attempt: %w", err)
		}
		items = append(items, a)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate quiz attempts: %w", rows.Err())
	}

	return items, total, nil
}

// isForeignKeyViolation reports whether err is a Postgres foreign key error.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23503"
}
