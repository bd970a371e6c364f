package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/military/repository"
	"asvab_prep_backend/internal/military/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for the military job catalog.
type Service struct {
	repo repository.Repository
}

// New creates a military jobs service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new job.
func (s *Service) Create(ctx context.Context, req transport.CreateJobRequest) (transport.JobResponse, error) {
	j, err := s.repo.Create(ctx, repository.CreateJobParams{
		Title:              req.Title,
		Code:               req.Code,
		Branch:             req.Branch,
		Description:        req.Description,
		Category:           req.Category,
		MinAFQTScore:       req.MinAFQTScore,
		RequiredLineScores: req.RequiredLineScores,
	})
	if err != nil {
		return transport.JobResponse{}, err
	}
	return toResponse(j), nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateJobRequest) (transport.JobResponse, error) {
	j, err := s.repo.Update(ctx, repository.UpdateJobParams{
		ID:                 id,
		Title:              req.Title,
		Code:               req.Code,
		Branch:             req.Branch,
		Description:        req.Description,
		Category:           req.Category,
		MinAFQTScore:       req.MinAFQTScore,
		RequiredLineScores: req.RequiredLineScores,
	})
	if err != nil {
		return transport.JobResponse{}, err
	}
	return toResponse(j), nil
}

// GetByID returns a single active job.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.JobResponse, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.JobResponse{}, err
	}
	if !j.IsActive {
		return transport.JobResponse{}, apperr.NotFound("military job not found")
	}
	return toResponse(j), nil
}

// List returns active jobs matching the filters. An AFQT score filter keeps
// only jobs the score qualifies for.
func (s *Service) List(ctx context.Context, req transport.ListJobsQuery) (transport.JobListResponse, error) {
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

	items, total, err := s.repo.List(ctx, repository.ListJobsParams{
		Branch:    req.Branch,
		Category:  req.Category,
		Search:    req.Search,
		AFQTScore: req.AFQTScore,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return transport.JobListResponse{}, err
	}

	responses := make([]transport.JobResponse, 0, len(items))
	for _, j := range items {
		responses = append(responses, toResponse(j))
	}
	return transport.JobListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Delete soft-deletes a job.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetActive(ctx, id, false)
}

// ListBranches returns the active job count per branch.
func (s *Service) ListBranches(ctx context.Context) ([]transport.BranchResponse, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.BranchResponse, 0, len(branches))
	for _, b := range branches {
		responses = append(responses, transport.BranchResponse{Branch: b.Branch, JobCount: b.JobCount})
	}
	return responses, nil
}

func toResponse(j repository.MilitaryJob) transport.JobResponse {
	lineScores := j.RequiredLineScores
	if lineScores == nil {
		lineScores = map[string]int{}
	}
	return transport.JobResponse{
		ID:                 j.ID.String(),
		Title:              j.Title,
		Code:               j.Code,
		Branch:             j.Branch,
		Description:        j.Description,
		Category:           j.Category,
		MinAFQTScore:       j.MinAFQTScore,
		RequiredLineScores: lineScores,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}
