package service

import (
	"context"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
)

// enrichResults attaches the caller's bookmark and attempt metadata to the
// given results: one bulk bookmark read for all items plus one aggregated
// attempt read for the questions among them. Mutates in place; any failure
// logs and leaves the results unenriched.
func (s *Service) enrichResults(ctx context.Context, userID uuid.UUID, results []*resultItem) {
	if userID == uuid.Nil || len(results) == 0 {
		return
	}

	ids := make([]uuid.UUID, len(results))
	questionIDs := make([]uuid.UUID, 0, len(results))
	for i, r := range results {
		ids[i] = r.item.ID
		if r.item.Type == repository.TypeQuestion {
			questionIDs = append(questionIDs, r.item.ID)
		}
	}

	refs, err := s.interactions.BookmarksFor(ctx, userID, ids)
	if err != nil {
		s.log.SearchDegraded("interaction enrichment", err)
		return
	}
	bookmarked := make(map[repository.BookmarkRef]bool, len(refs))
	for _, ref := range refs {
		bookmarked[ref] = true
	}

	statsByID := make(map[uuid.UUID]repository.QuestionStats)
	if len(questionIDs) > 0 {
		stats, err := s.interactions.QuestionStatsFor(ctx, userID, questionIDs)
		if err != nil {
			s.log.SearchDegraded("interaction enrichment", err)
			return
		}
		for _, qs := range stats {
			statsByID[qs.QuestionID] = qs
		}
	}

	for _, r := range results {
		ref := repository.BookmarkRef{ContentType: r.item.Type, ContentID: r.item.ID}
		interaction := &transport.UserInteraction{IsBookmarked: bookmarked[ref]}
		if qs, ok := statsByID[r.item.ID]; ok && r.item.Type == repository.TypeQuestion {
			last := qs.LastAttempted
			interaction.LastAttempted = &last
			if qs.Attempts > 0 {
				accuracy := float64(qs.Correct) / float64(qs.Attempts)
				interaction.Accuracy = &accuracy
			}
			spent := qs.TimeSpentSeconds
			interaction.TimeSpentSeconds = &spent
		}
		r.interaction = interaction
	}
}
