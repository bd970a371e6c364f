package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Flashcard is a row from the flashcards table.
type Flashcard struct {
	ID               uuid.UUID
	Front            string
	Back             string
	Category         string
	Difficulty       string
	Tags             []string
	EstimatedSeconds *int
	ReviewCount      int
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateFlashcardParams contains the fields for inserting a flashcard.
type CreateFlashcardParams struct {
	Front            string
	Back             string
	Category         string
	Difficulty       string
	Tags             []string
	EstimatedSeconds *int
}

// UpdateFlashcardParams contains optional fields for a partial update.
// Nil fields keep their current value.
type UpdateFlashcardParams struct {
	ID               uuid.UUID
	Front            *string
	Back             *string
	Category         *string
	Difficulty       *string
	Tags             []string
	EstimatedSeconds *int
}

// ListFlashcardsParams contains filters and pagination for listing flashcards.
type ListFlashcardsParams struct {
	Category        string
	Difficulty      string
	Tag             string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// Repository defines the persistence operations for flashcards.
type Repository interface {
	Create(ctx context.Context, params CreateFlashcardParams) (Flashcard, error)
	Update(ctx context.Context, params UpdateFlashcardParams) (Flashcard, error)
	GetByID(ctx context.Context, id uuid.UUID) (Flashcard, error)
	List(ctx context.Context, params ListFlashcardsParams) ([]Flashcard, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	IncrementReviewCount(ctx context.Context, id uuid.UUID) error
}
