package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
)

// CreatePreset saves a named filter set for the caller. The filter document
// round-trips through storage unchanged.
func (s *Service) CreatePreset(ctx context.Context, userID uuid.UUID, req transport.CreatePresetRequest) (transport.PresetResponse, error) {
	filters, err := json.Marshal(req.Filters)
	if err != nil {
		return transport.PresetResponse{}, fmt.Errorf("marshal preset filters: %w", err)
	}
	p, err := s.presets.CreatePreset(ctx, userID, req.Name, filters)
	if err != nil {
		return transport.PresetResponse{}, err
	}
	return toPresetResponse(p)
}

// ListPresets returns the caller's saved presets, newest first. Read
// failures degrade to an empty list.
func (s *Service) ListPresets(ctx context.Context, userID uuid.UUID) transport.PresetListResponse {
	presets, err := s.presets.ListPresets(ctx, userID)
	if err != nil {
		s.log.SearchDegraded("filter presets", err)
		return transport.PresetListResponse{Items: []transport.PresetResponse{}}
	}
	items := make([]transport.PresetResponse, 0, len(presets))
	for _, p := range presets {
		resp, err := toPresetResponse(p)
		if err != nil {
			s.log.SearchDegraded("filter presets", err)
			continue
		}
		items = append(items, resp)
	}
	return transport.PresetListResponse{Items: items}
}

func toPresetResponse(p repository.Preset) (transport.PresetResponse, error) {
	var filters transport.SearchFilters
	if len(p.Filters) > 0 {
		if err := json.Unmarshal(p.Filters, &filters); err != nil {
			return transport.PresetResponse{}, fmt.Errorf("unmarshal preset filters: %w", err)
		}
	}
	return transport.PresetResponse{
		ID:        p.ID,
		Name:      p.Name,
		Filters:   filters,
		CreatedAt: p.CreatedAt,
	}, nil
}
