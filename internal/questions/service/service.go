package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/adapters/storage"
	"asvab_prep_backend/internal/questions/repository"
	"asvab_prep_backend/internal/questions/transport"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for the question bank.
type Service struct {
	repo         repository.Repository
	storage      storage.Service
	figureBucket string
	log          *logger.Logger
}

// New creates a questions service. storageSvc may be nil when object storage
// is not configured; figure operations then return an error.
func New(repo repository.Repository, storageSvc storage.Service, figureBucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: storageSvc, figureBucket: figureBucket, log: log}
}

// Create inserts a new question after validating the answer key.
func (s *Service) Create(ctx context.Context, req transport.CreateQuestionRequest) (transport.QuestionResponse, error) {
	if req.CorrectIndex >= len(req.Options) {
		return transport.QuestionResponse{}, apperr.Validation("correctIndex is out of range for the provided options")
	}

	q, err := s.repo.Create(ctx, repository.CreateQuestionParams{
		Content:          req.Content,
		Explanation:      req.Explanation,
		Options:          req.Options,
		CorrectIndex:     req.CorrectIndex,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Tags:             req.Tags,
		Branch:           req.Branch,
		EstimatedSeconds: req.EstimatedSeconds,
	})
	if err != nil {
		return transport.QuestionResponse{}, err
	}
	return toResponse(q), nil
}

// Update applies a partial update. When options or the answer index change,
// the combination is re-validated against the stored row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateQuestionRequest) (transport.QuestionResponse, error) {
	if req.Options != nil || req.CorrectIndex != nil {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return transport.QuestionResponse{}, err
		}

		options := existing.Options
		if req.Options != nil {
			options = req.Options
		}
		correctIndex := existing.CorrectIndex
		if req.CorrectIndex != nil {
			correctIndex = *req.CorrectIndex
		}
		if correctIndex >= len(options) {
			return transport.QuestionResponse{}, apperr.Validation("correctIndex is out of range for the provided options")
		}
	}

	q, err := s.repo.Update(ctx, repository.UpdateQuestionParams{
		ID:               id,
		Content:          req.Content,
		Explanation:      req.Explanation,
		Options:          req.Options,
		CorrectIndex:     req.CorrectIndex,
		Category:         req.Category,
		Difficulty:       req.Difficulty,
		Tags:             req.Tags,
		Branch:           req.Branch,
		EstimatedSeconds: req.EstimatedSeconds,
	})
	if err != nil {
		return transport.QuestionResponse{}, err
	}
	return toResponse(q), nil
}

// GetByID returns a single active question.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.QuestionResponse, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.QuestionResponse{}, err
	}
	if !q.IsActive {
		return transport.QuestionResponse{}, apperr.NotFound("question not found")
	}
	return toResponse(q), nil
}

// List returns active questions matching the filters.
func (s *Service) List(ctx context.Context, req transport.ListQuestionsQuery) (transport.QuestionListResponse, error) {
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

	items, total, err := s.repo.List(ctx, repository.ListQuestionsParams{
		Category:   req.Category,
		Difficulty: req.Difficulty,
		Branch:     req.Branch,
		Tag:        req.Tag,
		Search:     req.Search,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		return transport.QuestionListResponse{}, err
	}

	responses := make([]transport.QuestionResponse, 0, len(items))
	for _, q := range items {
		responses = append(responses, toResponse(q))
	}
	return transport.QuestionListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Delete soft-deletes a question.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// GenerateFigureUploadURL creates a presigned upload URL for a question
// figure and records the new file key. Any previous figure is removed.
func (s *Service) GenerateFigureUploadURL(ctx context.Context, id uuid.UUID, req transport.FigureUploadRequest) (transport.PresignedURLResponse, error) {
	if s.storage == nil {
		return transport.PresignedURLResponse{}, apperr.Internal("file storage is not configured")
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PresignedURLResponse{}, err
	}

	presigned, err := s.storage.GenerateUploadURL(ctx, s.figureBucket, id.String(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.PresignedURLResponse{}, apperr.Wrap(apperr.KindValidation, err.Error(), err)
	}

	if err := s.repo.SetFigureKey(ctx, id, &presigned.FileKey); err != nil {
		return transport.PresignedURLResponse{}, err
	}

	if existing.FigureKey != nil {
		if err := s.storage.DeleteObject(ctx, s.figureBucket, *existing.FigureKey); err != nil {
			s.log.Warn("failed to delete replaced question figure",
				"questionId", id, "fileKey", *existing.FigureKey, "error", err)
		}
	}

	return transport.PresignedURLResponse{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

// GenerateFigureDownloadURL creates a presigned download URL for a question's figure.
func (s *Service) GenerateFigureDownloadURL(ctx context.Context, id uuid.UUID) (transport.PresignedURLResponse, error) {
	if s.storage == nil {
		return transport.PresignedURLResponse{}, apperr.Internal("file storage is not configured")
	}

	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.PresignedURLResponse{}, err
	}
	if !q.IsActive || q.FigureKey == nil {
		return transport.PresignedURLResponse{}, apperr.NotFound("question has no figure")
	}

	presigned, err := s.storage.GenerateDownloadURL(ctx, s.figureBucket, *q.FigureKey)
	if err != nil {
		return transport.PresignedURLResponse{}, fmt.Errorf("presign figure download: %w", err)
	}
	return transport.PresignedURLResponse{
		URL:       presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

func toResponse(q repository.Question) transport.QuestionResponse {
	return transport.QuestionResponse{
		ID:               q.ID.String(),
		Content:          q.Content,
		Explanation:      q.Explanation,
		Options:          q.Options,
		CorrectIndex:     q.CorrectIndex,
		Category:         q.Category,
		Difficulty:       q.Difficulty,
		Tags:             q.Tags,
		Branch:           q.Branch,
		EstimatedSeconds: q.EstimatedSeconds,
		HasFigure:        q.FigureKey != nil,
		IsActive:         q.IsActive,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}
