// Package service implements the multi-content search engine: retrieval
// across questions, flashcards, military jobs and study groups, relevance
// scoring, facets, suggestions, per-user enrichment and search analytics.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/cache"
	"asvab_prep_backend/platform/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	defaultSemanticLimit = 20
	maxSemanticLimit     = 50

	// retrievalCap bounds every per-type read. Scoring happens in memory, so
	// the cap is the protection against unbounded corpus scans.
	retrievalCap = 1000
)

// Service runs searches and owns the search-side analytics surfaces.
type Service struct {
	content      repository.ContentRepository
	facets       repository.FacetsRepository
	history      repository.HistoryRepository
	feedback     repository.FeedbackRepository
	presets      repository.PresetsRepository
	interactions repository.InteractionsRepository
	cache        cache.Cache
	bus          events.Bus
	log          *logger.Logger
}

// New creates a search service.
func New(repo repository.Repository, c cache.Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		content:      repo,
		facets:       repo,
		history:      repo,
		feedback:     repo,
		presets:      repo,
		interactions: repo,
		cache:        c,
		bus:          bus,
		log:          log,
	}
}

// resultItem pairs a normalized item with its per-execution score, markup
// and enrichment.
type resultItem struct {
	item        repository.Item
	score       float64
	highlights  []string
	interaction *transport.UserInteraction
}

func (r *resultItem) accuracy() float64 {
	if r.interaction == nil || r.interaction.Accuracy == nil {
		return 0
	}
	return *r.interaction.Accuracy
}

func (r *resultItem) estimatedSeconds() int {
	if r.item.EstimatedSeconds == nil {
		return 0
	}
	return *r.item.EstimatedSeconds
}

// retrieve fans the per-type reads out concurrently and concatenates the
// normalized results. Any failed read fails the whole retrieval.
func (s *Service) retrieve(ctx context.Context, types []string, scope searchScope) ([]repository.Item, error) {
	g, gctx := errgroup.WithContext(ctx)
	perType := make([][]repository.Item, len(types))
	for i, contentType := range types {
		g.Go(func() error {
			cond := scope.forType(contentType)
			var (
				items []repository.Item
				err   error
			)
			switch contentType {
			case repository.TypeQuestion:
				items, err = s.content.SearchQuestions(gctx, cond)
			case repository.TypeFlashcard:
				items, err = s.content.SearchFlashcards(gctx, cond)
			case repository.TypeMilitaryJob:
				items, err = s.content.SearchMilitaryJobs(gctx, cond)
			case repository.TypeStudyGroup:
				items, err = s.content.SearchStudyGroups(gctx, cond)
			default:
				return fmt.Errorf("unknown content type %q", contentType)
			}
			if err != nil {
				return err
			}
			perType[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []repository.Item
	for _, items := range perType {
		all = append(all, items...)
	}
	return all, nil
}

// loadProfile derives personalization context from the caller's recent quiz
// attempts. A missing or failing profile never fails the search.
func (s *Service) loadProfile(ctx context.Context, userID uuid.UUID) *userProfile {
	if userID == uuid.Nil {
		return nil
	}
	attempts, err := s.history.RecentQuizAttempts(ctx, userID, profileAttempts)
	if err != nil {
		s.log.SearchDegraded("personalization", err)
		return nil
	}
	return buildProfile(attempts)
}

// AdvancedSearch executes one full search: retrieval, scoring, sorting,
// pagination, facets, suggestions and per-user enrichment. History recording
// happens off the response path via the event bus.
func (s *Service) AdvancedSearch(ctx context.Context, userID uuid.UUID, req transport.AdvancedSearchRequest) (transport.AdvancedSearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	tokens := tokenize(query)
	concepts := extractConcepts(query)

	page, limit := clampPage(req.Page, req.Limit)

	var filters transport.SearchFilters
	if req.Filters != nil {
		filters = *req.Filters
	}
	sorting := transport.SearchSorting{Field: SortRelevance, Order: OrderDesc}
	if req.Sorting != nil {
		if req.Sorting.Field != "" {
			sorting.Field = req.Sorting.Field
		}
		if req.Sorting.Order != "" {
			sorting.Order = req.Sorting.Order
		}
	}

	scope, err := s.buildScope(ctx, userID, filters, searchTerms(tokens, concepts))
	if err != nil {
		s.log.Error("search scope build failed", "error", err)
		return transport.AdvancedSearchResponse{}, apperr.Internal("search operation failed")
	}

	items, err := s.retrieve(ctx, selectedTypes(filters.ContentType), scope)
	if err != nil {
		s.log.Error("search retrieval failed", "error", err)
		return transport.AdvancedSearchResponse{}, apperr.Internal("search operation failed")
	}

	profile := s.loadProfile(ctx, userID)

	results := make([]*resultItem, len(items))
	for i, it := range items {
		r := &resultItem{item: it}
		if len(tokens) == 0 {
			// An empty query ranks everything equally; filters alone
			// determined membership.
			r.score = 1.0
		} else {
			r.score = scoreItem(it, tokens, concepts, profile)
			r.highlights = buildHighlights(it, tokens)
		}
		results[i] = r
	}

	// Accuracy lives on the enrichment, so that sort needs the whole set
	// enriched up front. Every other sort enriches just the returned page.
	if sorting.Field == SortAccuracy {
		s.enrichResults(ctx, userID, results)
	}
	sortResults(results, sorting.Field, sorting.Order)

	totalCount := len(results)
	pageItems := paginate(results, page, limit)
	if sorting.Field != SortAccuracy {
		s.enrichResults(ctx, userID, pageItems)
	}

	var (
		facets      transport.SearchFacets
		suggestions []string
		wg          sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		facets = s.generateFacets(ctx, scope.base, results)
	}()
	go func() {
		defer wg.Done()
		suggestions = s.Suggestions(ctx, query)
	}()
	wg.Wait()

	if userID != uuid.Nil {
		s.bus.Publish(ctx, events.SearchExecuted{
			BaseEvent:   events.NewBaseEvent(),
			UserID:      userID,
			Query:       query,
			ResultCount: totalCount,
		})
	}

	return transport.AdvancedSearchResponse{
		Items:       toResultItems(pageItems),
		TotalCount:  totalCount,
		Page:        page,
		Limit:       limit,
		HasMore:     page*limit < totalCount,
		Facets:      facets,
		Suggestions: suggestions,
	}, nil
}

// SemanticSearch runs the concept-driven variant: recall is broadened by the
// extracted concepts and similarity is clamped to [0, 1].
func (s *Service) SemanticSearch(ctx context.Context, userID uuid.UUID, req transport.SemanticSearchQuery) (transport.SemanticSearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	tokens := tokenize(query)
	concepts := extractConcepts(query)

	limit := req.Limit
	if limit < 1 {
		limit = defaultSemanticLimit
	}
	if limit > maxSemanticLimit {
		limit = maxSemanticLimit
	}

	var filters transport.SearchFilters
	if req.Category != "" {
		filters.Categories = []string{req.Category}
	}

	scope, err := s.buildScope(ctx, userID, filters, searchTerms(tokens, concepts))
	if err != nil {
		s.log.Error("semantic scope build failed", "error", err)
		return transport.SemanticSearchResponse{}, apperr.Internal("search operation failed")
	}
	items, err := s.retrieve(ctx, repository.AllTypes, scope)
	if err != nil {
		s.log.Error("semantic retrieval failed", "error", err)
		return transport.SemanticSearchResponse{}, apperr.Internal("search operation failed")
	}

	profile := s.loadProfile(ctx, userID)

	results := make([]*resultItem, len(items))
	for i, it := range items {
		results[i] = &resultItem{
			item:  it,
			score: clamp01(scoreItem(it, tokens, concepts, profile)),
		}
	}
	sortResults(results, SortRelevance, OrderDesc)
	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]transport.SemanticResultItem, len(results))
	for i, r := range results {
		out[i] = transport.SemanticResultItem{
			ID:                 r.item.ID,
			Type:               r.item.Type,
			Title:              r.item.Title,
			Content:            r.item.Content,
			Category:           r.item.Category,
			SemanticSimilarity: r.score,
			MatchedConcepts:    matchedConcepts(r.item, concepts),
		}
	}
	return transport.SemanticSearchResponse{Items: out, Query: query}, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func toResultItems(results []*resultItem) []transport.SearchResultItem {
	out := make([]transport.SearchResultItem, len(results))
	for i, r := range results {
		out[i] = toResultItem(r)
	}
	return out
}

func toResultItem(r *resultItem) transport.SearchResultItem {
	it := r.item
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	highlights := r.highlights
	if highlights == nil {
		highlights = []string{}
	}
	return transport.SearchResultItem{
		ID:             it.ID,
		Type:           it.Type,
		Title:          it.Title,
		Content:        it.Content,
		Category:       it.Category,
		Difficulty:     it.Difficulty,
		Tags:           tags,
		RelevanceScore: r.score,
		Highlights:     highlights,
		Metadata: transport.ItemMetadata{
			CreatedAt:        it.CreatedAt,
			UpdatedAt:        it.UpdatedAt,
			Popularity:       it.Popularity,
			EstimatedSeconds: it.EstimatedSeconds,
			Branch:           it.Branch,
		},
		UserInteraction: r.interaction,
	}
}
