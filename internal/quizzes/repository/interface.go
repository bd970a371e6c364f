package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is a row from the quiz_attempts table.
type QuizAttempt struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Category       string
	Difficulty     string
	Score          int
	TotalQuestions int
	CompletedAt    time.Time
}

// QuestionResult is one answered question within a quiz attempt.
type QuestionResult struct {
	QuestionID       uuid.UUID
	IsCorrect        bool
	TimeSpentSeconds int
}

// CreateAttemptParams contains a finished quiz and its per-question results.
type CreateAttemptParams struct {
	UserID     uuid.UUID
	Category   string
	Difficulty string
	Questions  []QuestionResult
}

// Repository defines the persistence operations for quiz attempts.
type Repository interface {
	// CreateAttempt records the attempt and its question results in one
	// transaction. Score and total are derived from the results.
	CreateAttempt(ctx context.Context, params CreateAttemptParams) (QuizAttempt, error)
	// ListAttempts returns the user's attempts, most recent first.
	ListAttempts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]QuizAttempt, int, error)
}
