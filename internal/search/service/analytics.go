package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
	"asvab_prep_backend/platform/apperr"
)

const (
	defaultWindowDays = 30

	// analyticsHistoryCap bounds the in-memory derivation over one user's
	// window.
	analyticsHistoryCap   = 1000
	analyticsQuizAttempts = 100

	topTermsLimit      = 10
	topCategoriesLimit = 5
	minTermLength      = 3

	trendingLimit       = 20
	zeroResultLimit     = 50
	abandonedMinRepeats = 2
	abandonedLimit      = 20

	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	defaultPopularLimit = 10
	maxPopularLimit     = 20

	popularCacheKey = "search:popular"
	trendsCacheKey  = "search:trends:30"
	popularCacheTTL = 20 * time.Minute
	trendsCacheTTL  = 20 * time.Minute
)

// RegisterHandlers subscribes the history recorder to search events, taking
// the append off the response path.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.SearchExecuted{}.EventName(), events.HandlerFunc(s.handleSearchExecuted))
}

func (s *Service) handleSearchExecuted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.SearchExecuted)
	if !ok {
		return nil
	}
	return s.history.RecordSearch(ctx, e.UserID, e.Query, e.ResultCount)
}

// RecordFeedback persists one feedback submission. Unlike history recording
// this is synchronous: the caller expects a confirmation, so persistence
// errors surface.
func (s *Service) RecordFeedback(ctx context.Context, userID uuid.UUID, req transport.FeedbackRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return apperr.Validation("rating must be between 1 and 5")
	}
	resultID, err := uuid.Parse(req.ResultID)
	if err != nil {
		return apperr.Validation("resultId must be a valid UUID")
	}
	return s.feedback.RecordFeedback(ctx, repository.CreateFeedbackParams{
		UserID:     userID,
		Query:      req.Query,
		ResultID:   resultID,
		Rating:     req.Rating,
		Feedback:   req.Feedback,
		WasHelpful: req.WasHelpful,
	})
}

// History returns the caller's recent searches, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, limit int) (transport.HistoryResponse, error) {
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	entries, err := s.history.ListHistory(ctx, userID, limit)
	if err != nil {
		return transport.HistoryResponse{}, err
	}
	items := make([]transport.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = transport.HistoryEntryResponse{
			Query:       e.Query,
			ResultCount: e.ResultCount,
			SearchedAt:  e.SearchedAt,
		}
	}
	return transport.HistoryResponse{Items: items}, nil
}

// UserAnalytics summarizes the caller's search behavior over the window.
// Read failures zero the affected sections instead of failing the report.
func (s *Service) UserAnalytics(ctx context.Context, userID uuid.UUID, days int) transport.UserAnalyticsResponse {
	if days < 1 {
		days = defaultWindowDays
	}
	resp := transport.UserAnalyticsResponse{
		WindowDays:     days,
		TopSearchTerms: []transport.TermCount{},
		TopCategories:  []string{},
	}
	since := time.Now().AddDate(0, 0, -days)

	entries, err := s.history.ListHistorySince(ctx, userID, since, analyticsHistoryCap)
	if err != nil {
		s.log.SearchDegraded("user analytics", err)
	} else {
		resp.TotalSearches = len(entries)
		resp.UniqueQueries = countUniqueQueries(entries)
		resp.SuccessRate = successRate(entries)
		resp.TopSearchTerms = topSearchTerms(entries, topTermsLimit)
		resp.PreferredSearchHour = preferredHour(entries)
	}

	// Top categories come from quiz history, not search history: what a user
	// practices says more than what they type.
	attempts, err := s.history.RecentQuizAttempts(ctx, userID, analyticsQuizAttempts)
	if err != nil {
		s.log.SearchDegraded("user analytics", err)
	} else {
		resp.TopCategories = topCategories(attempts, topCategoriesLimit)
	}
	return resp
}

// Trends reports global search trends over the window. The default window is
// served from cache when the background refresher has populated it.
func (s *Service) Trends(ctx context.Context, days int) transport.TrendsResponse {
	if days < 1 {
		days = defaultWindowDays
	}
	if days == defaultWindowDays {
		var cached transport.TrendsResponse
		if hit, err := s.cache.GetJSON(ctx, trendsCacheKey, &cached); err == nil && hit {
			return cached
		}
	}
	resp := s.buildTrends(ctx, days)
	if days == defaultWindowDays {
		if err := s.cache.SetJSON(ctx, trendsCacheKey, resp, trendsCacheTTL); err != nil {
			s.log.SearchDegraded("trends cache", err)
		}
	}
	return resp
}

func (s *Service) buildTrends(ctx context.Context, days int) transport.TrendsResponse {
	resp := transport.TrendsResponse{
		WindowDays:        days,
		TrendingQueries:   []transport.QueryCount{},
		DailyVolume:       []transport.DayCount{},
		ZeroResultQueries: []string{},
	}
	since := time.Now().AddDate(0, 0, -days)

	if trending, err := s.history.TrendingQueries(ctx, since, trendingLimit); err != nil {
		s.log.SearchDegraded("trending queries", err)
	} else {
		resp.TrendingQueries = toQueryCounts(trending)
	}
	if volume, err := s.history.DailyVolume(ctx, since); err != nil {
		s.log.SearchDegraded("daily volume", err)
	} else {
		buckets := make([]transport.DayCount, len(volume))
		for i, d := range volume {
			buckets[i] = transport.DayCount{Day: d.Day.Format("2006-01-02"), Count: d.Count}
		}
		resp.DailyVolume = buckets
	}
	if zero, err := s.history.ZeroResultQueries(ctx, since, zeroResultLimit); err != nil {
		s.log.SearchDegraded("zero result queries", err)
	} else {
		resp.ZeroResultQueries = zero
	}
	return resp
}

// Quality reports feedback and failure signals over the window. Read
// failures zero the affected sections.
func (s *Service) Quality(ctx context.Context, days int) transport.QualityResponse {
	if days < 1 {
		days = defaultWindowDays
	}
	resp := transport.QualityResponse{
		WindowDays:        days,
		ZeroResultQueries: []string{},
		AbandonedSearches: []transport.QueryCount{},
	}
	since := time.Now().AddDate(0, 0, -days)

	if stats, err := s.feedback.Stats(ctx, since); err != nil {
		s.log.SearchDegraded("feedback stats", err)
	} else {
		resp.AverageRating = stats.AverageRating
		resp.HelpfulPercentage = stats.HelpfulPercentage
		resp.FeedbackCount = stats.Total
	}
	if zero, err := s.history.ZeroResultQueries(ctx, since, zeroResultLimit); err != nil {
		s.log.SearchDegraded("zero result queries", err)
	} else {
		resp.ZeroResultQueries = zero
	}
	if abandoned, err := s.history.AbandonedQueries(ctx, since, abandonedMinRepeats, abandonedLimit); err != nil {
		s.log.SearchDegraded("abandoned queries", err)
	} else {
		resp.AbandonedSearches = toQueryCounts(abandoned)
	}
	return resp
}

// Popular returns the most searched queries of the last 30 days, served from
// cache when the background refresher has populated it.
func (s *Service) Popular(ctx context.Context, limit int) transport.PopularResponse {
	if limit < 1 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	var cached []transport.QueryCount
	if hit, err := s.cache.GetJSON(ctx, popularCacheKey, &cached); err == nil && hit {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return transport.PopularResponse{Queries: cached}
	}

	since := time.Now().AddDate(0, 0, -defaultWindowDays)
	trending, err := s.history.TrendingQueries(ctx, since, limit)
	if err != nil {
		s.log.SearchDegraded("popular queries", err)
		return transport.PopularResponse{Queries: []transport.QueryCount{}}
	}
	return transport.PopularResponse{Queries: toQueryCounts(trending)}
}

// RefreshPopularCache recomputes the popular queries and stores them. The
// scheduler invokes it periodically so interactive reads stay cheap.
func (s *Service) RefreshPopularCache(ctx context.Context) error {
	since := time.Now().AddDate(0, 0, -defaultWindowDays)
	trending, err := s.history.TrendingQueries(ctx, since, maxPopularLimit)
	if err != nil {
		return fmt.Errorf("aggregate popular queries: %w", err)
	}
	if err := s.cache.SetJSON(ctx, popularCacheKey, toQueryCounts(trending), popularCacheTTL); err != nil {
		return fmt.Errorf("store popular queries: %w", err)
	}
	return nil
}

// RefreshTrendsCache recomputes the default-window trends and stores them.
func (s *Service) RefreshTrendsCache(ctx context.Context) error {
	resp := s.buildTrends(ctx, defaultWindowDays)
	if err := s.cache.SetJSON(ctx, trendsCacheKey, resp, trendsCacheTTL); err != nil {
		return fmt.Errorf("store search trends: %w", err)
	}
	return nil
}

func toQueryCounts(counts []repository.QueryCount) []transport.QueryCount {
	out := make([]transport.QueryCount, len(counts))
	for i, qc := range counts {
		out[i] = transport.QueryCount{Query: qc.Query, Count: qc.Count}
	}
	return out
}

func countUniqueQueries(entries []repository.HistoryEntry) int {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[strings.ToLower(e.Query)] = true
	}
	return len(seen)
}

// successRate is the fraction of searches that produced at least one result.
func successRate(entries []repository.HistoryEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	hits := 0
	for _, e := range entries {
		if e.ResultCount > 0 {
			hits++
		}
	}
	return float64(hits) / float64(len(entries))
}

// topSearchTerms frequency-ranks query terms of at least minTermLength
// characters. Ties break alphabetically.
func topSearchTerms(entries []repository.HistoryEntry, limit int) []transport.TermCount {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, term := range tokenize(e.Query) {
			if len(term) >= minTermLength {
				counts[term]++
			}
		}
	}
	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	out := make([]transport.TermCount, len(terms))
	for i, t := range terms {
		out[i] = transport.TermCount{Term: t, Count: counts[t]}
	}
	return out
}

// preferredHour is the mode of the search hours of day.
func preferredHour(entries []repository.HistoryEntry) int {
	var hours [24]int
	for _, e := range entries {
		hours[e.SearchedAt.Hour()]++
	}
	best := 0
	for hour, n := range hours {
		if n > hours[best] {
			best = hour
		}
	}
	return best
}

// topCategories frequency-ranks quiz categories. Ties break alphabetically.
func topCategories(attempts []repository.QuizAttemptSummary, limit int) []string {
	counts := make(map[string]int)
	for _, a := range attempts {
		if a.Category != "" {
			counts[a.Category]++
		}
	}
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories
}
