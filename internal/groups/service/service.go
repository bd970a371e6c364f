package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"asvab_prep_backend/internal/groups/repository"
	"asvab_prep_backend/internal/groups/transport"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/sanitize"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	inviteQRSize = 256
)

// Service provides business logic for study groups.
type Service struct {
	repo repository.Repository
	cfg  config.AppConfig
}

// New creates a study groups service.
func New(repo repository.Repository, cfg config.AppConfig) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Create creates a group owned by the caller, who becomes its first member.
// Name and description are searchable and rendered in highlight fragments, so
// HTML is stripped on the way in.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req transport.CreateGroupRequest) (transport.GroupResponse, error) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return transport.GroupResponse{}, apperr.Validation("group name is required")
	}

	g, err := s.repo.Create(ctx, repository.CreateGroupParams{
		Name:        name,
		Description: sanitize.Text(req.Description),
		Category:    req.Category,
		Branch:      req.Branch,
		OwnerID:     ownerID,
	})
	if err != nil {
		return transport.GroupResponse{}, err
	}

	resp := toResponse(g)
	resp.IsMember = true
	return resp, nil
}

// GetByID returns a single active group. When the caller is known their
// membership is included.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, callerID *uuid.UUID) (transport.GroupResponse, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.GroupResponse{}, err
	}
	if !g.IsActive {
		return transport.GroupResponse{}, apperr.NotFound("study group not found")
	}

	resp := toResponse(g)
	if callerID != nil {
		isMember, err := s.repo.IsMember(ctx, id, *callerID)
		if err != nil {
			return transport.GroupResponse{}, err
		}
		resp.IsMember = isMember
	}
	return resp, nil
}

// List returns active groups matching the filters, most popular first.
func (s *Service) List(ctx context.Context, req transport.ListGroupsQuery) (transport.GroupListResponse, error) {
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

	items, total, err := s.repo.List(ctx, repository.ListGroupsParams{
		Category: req.Category,
		Branch:   req.Branch,
		Search:   req.Search,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		return transport.GroupListResponse{}, err
	}

	responses := make([]transport.GroupResponse, 0, len(items))
	for _, g := range items {
		responses = append(responses, toResponse(g))
	}
	return transport.GroupListResponse{
		Items:      responses,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Join enrolls the caller in the group.
func (s *Service) Join(ctx context.Context, groupID, userID uuid.UUID) error {
	return s.repo.AddMember(ctx, groupID, userID)
}

// Leave withdraws the caller from the group.
func (s *Service) Leave(ctx context.Context, groupID, userID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, groupID, userID)
}

// InviteQR renders a PNG QR code of the group's join deep-link, suitable for
// sharing outside the app.
func (s *Service) InviteQR(ctx context.Context, groupID uuid.UUID) ([]byte, error) {
	g, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsActive {
		return nil, apperr.NotFound("study group not found")
	}

	joinURL := fmt.Sprintf("%s/groups/join?groupId=%s",
		strings.TrimRight(s.cfg.GetAppBaseURL(), "/"), g.ID)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, inviteQRSize)
	if err != nil {
		return nil, fmt.Errorf("encode invite qr: %w", err)
	}
	return png, nil
}

func toResponse(g repository.StudyGroup) transport.GroupResponse {
	return transport.GroupResponse{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		Category:    g.Category,
		Branch:      g.Branch,
		OwnerID:     g.OwnerID.String(),
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
