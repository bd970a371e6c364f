package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/flashcards/repository"
	"asvab_prep_backend/internal/flashcards/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for flashcards.
type Service struct {
	repo repository.Repository
}

// New creates a flashcards service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new flashcard.
func (s *Service) Create(ctx context.Context, req transport.CreateFlashcardRequest) (transport.FlashcardResponse, error) {
	f, err := s.repo.Create(ctx, repository.CreateFlashcardParams{
		Front:            req.Front,
		Back:             req.Back,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Tags:             req.Tags,
		EstimatedSeconds: req.EstimatedSeconds,
	})
	if err != nil {
		return transport.FlashcardResponse{}, err
	}
	return toResponse(f), nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateFlashcardRequest) (transport.FlashcardResponse, error) {
	f, err := s.repo.Update(ctx, repository.UpdateFlashcardParams{
		ID:               id,
		Front:            req.Front,
		Back:             req.Back,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Tags:             req.Tags,
		EstimatedSeconds: req.EstimatedSeconds,
	})
	if err != nil {
		return transport.FlashcardResponse{}, err
	}
	return toResponse(f), nil
}

// GetByID returns a single active flashcard.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.FlashcardResponse, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.FlashcardResponse{}, err
	}
	if !f.IsActive {
		return transport.FlashcardResponse{}, apperr.NotFound("flashcard not found")
	}
	return toResponse(f), nil
}

// List returns active flashcards matching the filters.
func (s *Service) List(ctx context.Context, req transport.ListFlashcardsQuery) (transport.FlashcardListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	items, total, err := s.repo.List(ctx, repository.ListFlashcardsParams{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Tag:        req.Tag,
		Search:     req.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return transport.FlashcardListResponse{}, err
	}

	responses := make([]transport.FlashcardResponse, 0, len(items))
	for _, f := range items {
		responses = append(responses, toResponse(f))
	}
	return transport.FlashcardListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Delete soft-deletes a flashcard.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// Review records one review of a flashcard. The counter feeds popularity
// ranking in search.
func (s *Service) Review(ctx context.Context, id uuid.UUID) error {
	return s.repo.IncrementReviewCount(ctx, id)
}

func toResponse(f repository.Flashcard) transport.FlashcardResponse {
	return transport.FlashcardResponse{
		ID:               f.ID.String(),
		Front:            f.Front,
		Back:             f.Back,
		Category:         f.Category,
		Difficulty:       f.Difficulty,
		Tags:             f.Tags,
		EstimatedSeconds: f.EstimatedSeconds,
		ReviewCount:      f.ReviewCount,
		IsActive:         f.IsActive,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}
