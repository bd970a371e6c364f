package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultSimilarLimit = 10
	maxSimilarLimit     = 20

	// similarTermCap keeps the retrieval OR-group bounded when the source
	// title is long.
	similarTermCap = 10
)

// Similar finds content resembling the given item: candidates share the
// source's category when it has one and rank by word and concept overlap
// with the source text. The source itself is excluded.
func (s *Service) Similar(ctx context.Context, userID, itemID uuid.UUID, typeHint string, limit int) (transport.SimilarResponse, error) {
	if limit < 1 {
		limit = defaultSimilarLimit
	}
	if limit > maxSimilarLimit {
		limit = maxSimilarLimit
	}

	source, found, err := s.findSource(ctx, itemID, typeHint)
	if err != nil {
		s.log.Error("similar content lookup failed", "error", err)
		return transport.SimilarResponse{}, apperr.Internal("search operation failed")
	}
	if !found {
		return transport.SimilarResponse{}, apperr.NotFound("item not found")
	}

	tokens := make([]string, 0, similarTermCap)
	for _, token := range tokenize(source.Title) {
		if len(token) > 2 {
			tokens = append(tokens, token)
		}
		if len(tokens) == similarTermCap {
			break
		}
	}
	concepts := extractConcepts(source.Title + " " + source.Content)

	var filters transport.SearchFilters
	if source.Category != nil && *source.Category != "" {
		filters.Categories = []string{*source.Category}
	}

	scope, err := s.buildScope(ctx, userID, filters, searchTerms(tokens, concepts))
	if err != nil {
		s.log.Error("similar scope build failed", "error", err)
		return transport.SimilarResponse{}, apperr.Internal("search operation failed")
	}
	items, err := s.retrieve(ctx, repository.AllTypes, scope)
	if err != nil {
		s.log.Error("similar retrieval failed", "error", err)
		return transport.SimilarResponse{}, apperr.Internal("search operation failed")
	}

	results := make([]*resultItem, 0, len(items))
	for _, it := range items {
		if it.ID == source.ID && it.Type == source.Type {
			continue
		}
		results = append(results, &resultItem{
			item:       it,
			score:      scoreItem(it, tokens, concepts, nil),
			highlights: buildHighlights(it, tokens),
		})
	}
	sortResults(results, SortRelevance, OrderDesc)
	if len(results) > limit {
		results = results[:limit]
	}
	s.enrichResults(ctx, userID, results)

	return transport.SimilarResponse{Items: toResultItems(results)}, nil
}

// findSource probes the content types in fixed order when no type hint
// narrows the lookup.
func (s *Service) findSource(ctx context.Context, itemID uuid.UUID, typeHint string) (repository.Item, bool, error) {
	if typeHint != "" {
		return s.content.FindItem(ctx, typeHint, itemID)
	}
	for _, contentType := range repository.AllTypes {
		item, found, err := s.content.FindItem(ctx, contentType, itemID)
		if err != nil {
			return repository.Item{}, false, err
		}
		if found {
			return item, true, nil
		}
	}
	return repository.Item{}, false, nil
}
