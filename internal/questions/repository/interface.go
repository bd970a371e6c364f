package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Question is a row from the questions table.
type Question struct {
	ID               uuid.UUID
	Content          string
	Explanation      *string
	Options          []string
	CorrectIndex     int
	Category         string
	Difficulty       string
	Tags             []string
	Branch           *string
	EstimatedSeconds *int
	FigureKey        *string
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateQuestionParams contains the fields for inserting a question.
type CreateQuestionParams struct {
	Content          string
	Explanation      *string
	Options          []string
	CorrectIndex     int
	Category         string
	Difficulty       string
	Tags             []string
	Branch           *string
	EstimatedSeconds *int
}

// UpdateQuestionParams contains optional fields for a partial update.
// Nil fields keep their current value.
type UpdateQuestionParams struct {
	ID               uuid.UUID
	Content          *string
	Explanation      *string
	Options          []string
	CorrectIndex     *int
	Category         *string
	Difficulty       *string
	Tags             []string
	Branch           *string
	EstimatedSeconds *int
}

// ListQuestionsParams contains filters and pagination for listing questions.
type ListQuestionsParams struct {
	Category        string
	Difficulty      string
	Branch          string
	Tag             string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// Repository defines the persistence operations for questions.
type Repository interface {
	Create(ctx context.Context, params CreateQuestionParams) (Question, error)
	Update(ctx context.Context, params UpdateQuestionParams) (Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (Question, error)
	List(ctx context.Context, params ListQuestionsParams) ([]Question, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetFigureKey(ctx context.Context, id uuid.UUID, figureKey *string) error
}
