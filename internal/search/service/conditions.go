package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
)

// searchScope is the built predicate set plus the caller's bookmark ids when
// the bookmark filter is active.
type searchScope struct {
	base      repository.ContentConditions
	bookmarks map[string][]uuid.UUID
}

// forType renders the conditions for one content type. With the bookmark
// filter active, a type the caller has no bookmarks in matches nothing.
func (sc searchScope) forType(contentType string) repository.ContentConditions {
	cond := sc.base
	if sc.bookmarks != nil {
		ids := sc.bookmarks[contentType]
		if ids == nil {
			ids = []uuid.UUID{}
		}
		cond.BookmarkedIDs = ids
	}
	return cond
}

// buildScope maps request filters onto retrieval conditions. Resolving the
// bookmark filter needs a read, so the build can fail.
func (s *Service) buildScope(ctx context.Context, userID uuid.UUID, filters transport.SearchFilters, terms []string) (searchScope, error) {
	scope := searchScope{
		base: repository.ContentConditions{
			Categories:     filters.Categories,
			Difficulties:   filters.Difficulties,
			Tags:           filters.Tags,
			Branch:         filters.Branch,
			DateFrom:       filters.DateFrom,
			DateTo:         filters.DateTo,
			MinAFQTScore:   filters.MinAFQTScore,
			MaxAFQTScore:   filters.MaxAFQTScore,
			MinSeconds:     filters.MinSeconds,
			MaxSeconds:     filters.MaxSeconds,
			HasExplanation: filters.HasExplanation,
			Terms:          terms,
			Limit:          retrievalCap,
		},
	}
	if filters.IsBookmarked != nil && *filters.IsBookmarked {
		if userID == uuid.Nil {
			scope.bookmarks = map[string][]uuid.UUID{}
			return scope, nil
		}
		byType, err := s.interactions.BookmarkedIDsByType(ctx, userID)
		if err != nil {
			return searchScope{}, fmt.Errorf("resolve bookmark filter: %w", err)
		}
		scope.bookmarks = byType
	}
	return scope, nil
}

// selectedTypes resolves the content-type selector to the concrete type set.
func selectedTypes(selector string) []string {
	switch selector {
	case "QUESTIONS":
		return []string{repository.TypeQuestion}
	case "FLASHCARDS":
		return []string{repository.TypeFlashcard}
	case "MILITARY_JOBS":
		return []string{repository.TypeMilitaryJob}
	case "STUDY_GROUPS":
		return []string{repository.TypeStudyGroup}
	default:
		return repository.AllTypes
	}
}
