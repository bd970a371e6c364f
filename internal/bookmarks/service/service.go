package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/bookmarks/repository"
	"asvab_prep_backend/internal/bookmarks/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for bookmarks.
type Service struct {
	repo repository.Repository
}

// New creates a bookmarks service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Toggle flips the caller's bookmark on an item and returns the new state.
func (s *Service) Toggle(ctx context.Context, userID uuid.UUID, req transport.ToggleBookmarkRequest) (transport.ToggleBookmarkResponse, error) {
	contentID, err := uuid.Parse(req.ContentID)
	if err != nil {
		return transport.ToggleBookmarkResponse{}, apperr.Validation("contentId must be a valid UUID")
	}

	bookmarked, err := s.repo.Toggle(ctx, userID, req.ContentType, contentID)
	if err != nil {
		return transport.ToggleBookmarkResponse{}, err
	}
	return transport.ToggleBookmarkResponse{
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Bookmarked:  bookmarked,
	}, nil
}

// List returns the caller's bookmarks, most recent first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, req transport.ListBookmarksQuery) (transport.BookmarkListResponse, error) {
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

	items, total, err := s.repo.List(ctx, repository.ListBookmarksParams{
		UserID:      userID,
		ContentType: req.ContentType,
		Limit:       limit,
		Offset:      (page - 1) * limit,
	})
	if err != nil {
		return transport.BookmarkListResponse{}, err
	}

	responses := make([]transport.BookmarkResponse, 0, len(items))
	for _, b := range items {
		responses = append(responses, transport.BookmarkResponse{
			ContentType: b.ContentType,
			ContentID:   b.ContentID.String(),
			CreatedAt:   b.CreatedAt,
		})
	}
	return transport.BookmarkListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}
