package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/quizzes/repository"
	"asvab_prep_backend/internal/quizzes/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for quiz attempts.
type Service struct {
	repo repository.Repository
}

// New creates a quizzes service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// RecordAttempt stores a finished quiz for the caller. The score is derived
// from the per-question results, not trusted from the client.
func (s *Service) RecordAttempt(ctx context.Context, userID uuid.UUID, req transport.CreateAttemptRequest) (transport.AttemptResponse, error) {
	questions := make([]repository.QuestionResult, 0, len(req.Questions))
	for _, q := range req.Questions {
		questionID, err := uuid.Parse(q.QuestionID)
		if err != nil {
			return transport.AttemptResponse{}, apperr.Validation("questionId must be a valid UUID")
		}
		questions = append(questions, repository.QuestionResult{
			QuestionID:       questionID,
			IsCorrect:        q.IsCorrect,
			TimeSpentSeconds: q.TimeSpentSeconds,
		})
	}

	attempt, err := s.repo.CreateAttempt(ctx, repository.CreateAttemptParams{
		UserID:     userID,
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Questions:  questions,
	})
	if err != nil {
		return transport.AttemptResponse{}, err
	}
	return toResponse(attempt), nil
}

// ListAttempts returns the caller's attempts, most recent first.
func (s *Service) ListAttempts(ctx context.Context, userID uuid.UUID, req transport.ListAttemptsQuery) (transport.AttemptListResponse, error) {
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

	items, total, err := s.repo.ListAttempts(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return transport.AttemptListResponse{}, err
	}

	responses := make([]transport.AttemptResponse, 0, len(items))
	for _, a := range items {
		responses = append(responses, toResponse(a))
	}
	return transport.AttemptListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

func toResponse(a repository.QuizAttempt) transport.AttemptResponse {
	return transport.AttemptResponse{
		ID:             a.ID.String(),
		Category:       a.Category,
		Difficulty:     a.Difficulty,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		CompletedAt:    a.CompletedAt,
	}
}
