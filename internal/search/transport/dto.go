// Package transport defines request/response DTOs for the search module.
package transport

import (
	"time"

	"github.com/google/uuid"
)

// SearchFilters narrows a search along structured dimensions. Every field is
// optional; an absent field imposes no constraint. The same shape is stored
// verbatim as a filter preset, so it must round-trip through JSON unchanged.
type SearchFilters struct {
	Categories   []string   `json:"categories,omitempty"`
	Difficulties []string   `json:"difficulties,omitempty" validate:"omitempty,dive,oneof=EASY MEDIUM HARD"`
	Tags         []string   `json:"tags,omitempty"`
	ContentType  string     `json:"contentType,omitempty" validate:"omitempty,oneof=QUESTIONS FLASHCARDS MILITARY_JOBS STUDY_GROUPS ALL"`
	Branch       string     `json:"branch,omitempty"`
	DateFrom     *time.Time `json:"dateFrom,omitempty"`
	DateTo       *time.Time `json:"dateTo,omitempty"`
	// AFQT window applied to military jobs only.
	MinAFQTScore *int `json:"minAfqtScore,omitempty" validate:"omitempty,min=1,max=99"`
	MaxAFQTScore *int `json:"maxAfqtScore,omitempty" validate:"omitempty,min=1,max=99"`
	// Estimated time-to-complete window, applied where content carries one.
	MinSeconds     *int  `json:"minSeconds,omitempty" validate:"omitempty,min=0"`
	MaxSeconds     *int  `json:"maxSeconds,omitempty" validate:"omitempty,min=0"`
	HasExplanation *bool `json:"hasExplanation,omitempty"`
	IsBookmarked   *bool `json:"isBookmarked,omitempty"`
}

// SearchSorting selects the sort field and direction.
type SearchSorting struct {
	Field string `json:"field" validate:"omitempty,oneof=RELEVANCE DATE DIFFICULTY POPULARITY ACCURACY TIME_TO_COMPLETE"`
	Order string `json:"order" validate:"omitempty,oneof=ASC DESC"`
}

// AdvancedSearchRequest is the body of POST /search/advanced.
type AdvancedSearchRequest struct {
	Query   string         `json:"query" validate:"max=500"`
	Filters *SearchFilters `json:"filters"`
	Sorting *SearchSorting `json:"sorting"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// ItemMetadata carries the non-searchable attributes of a result item.
type ItemMetadata struct {
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Popularity       int       `json:"popularity"`
	EstimatedSeconds *int      `json:"estimatedSeconds,omitempty"`
	Branch           *string   `json:"branch,omitempty"`
}

// UserInteraction is attached to a result item when the caller is known.
type UserInteraction struct {
	IsBookmarked     bool       `json:"isBookmarked"`
	LastAttempted    *time.Time `json:"lastAttempted,omitempty"`
	Accuracy         *float64   `json:"accuracy,omitempty"`
	TimeSpentSeconds *int       `json:"timeSpentSeconds,omitempty"`
}

// SearchResultItem is one scored result. Scores are comparable only within
// the search execution that produced them.
type SearchResultItem struct {
	ID              uuid.UUID        `json:"id"`
	Type            string           `json:"type"`
	Title           string           `json:"title"`
	Content         string           `json:"content"`
	Category        *string          `json:"category,omitempty"`
	Difficulty      *string          `json:"difficulty,omitempty"`
	Tags            []string         `json:"tags"`
	RelevanceScore  float64          `json:"relevanceScore"`
	Highlights      []string         `json:"highlights"`
	Metadata        ItemMetadata     `json:"metadata"`
	UserInteraction *UserInteraction `json:"userInteraction,omitempty"`
}

// FacetBucket is one value/count pair within a facet dimension.
type FacetBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// SearchFacets aggregates counts for the current search scope. Dimensions
// degrade independently to empty slices when their source read fails.
type SearchFacets struct {
	Categories   []FacetBucket `json:"categories"`
	Difficulties []FacetBucket `json:"difficulties"`
	ContentTypes []FacetBucket `json:"contentTypes"`
	TimeRanges   []FacetBucket `json:"timeRanges"`
	Branches     []FacetBucket `json:"branches"`
}

// AdvancedSearchResponse is the full payload of POST /search/advanced.
type AdvancedSearchResponse struct {
	Items       []SearchResultItem `json:"items"`
	TotalCount  int                `json:"totalCount"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
	HasMore     bool               `json:"hasMore"`
	Facets      SearchFacets       `json:"facets"`
	Suggestions []string           `json:"suggestions"`
}

// SemanticSearchQuery binds GET /search/semantic query params.
type SemanticSearchQuery struct {
	Query    string `form:"query" validate:"required,max=500"`
	Category string `form:"category"`
	Limit    int    `form:"limit"`
}

// SemanticResultItem is a result of the concept-driven search variant. Its
// similarity is clamped to [0, 1].
type SemanticResultItem struct {
	ID                 uuid.UUID `json:"id"`
	Type               string    `json:"type"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	Category           *string   `json:"category,omitempty"`
	SemanticSimilarity float64   `json:"semanticSimilarity"`
	MatchedConcepts    []string  `json:"matchedConcepts"`
}

// SemanticSearchResponse is the payload of GET /search/semantic.
type SemanticSearchResponse struct {
	Items []SemanticResultItem `json:"items"`
	Query string               `json:"query"`
}

// SuggestionsQuery binds GET /search/suggestions query params.
type SuggestionsQuery struct {
	Query string `form:"query" validate:"max=200"`
}

// SuggestionsResponse is the payload of GET /search/suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// PopularQuery binds GET /search/popular query params.
type PopularQuery struct {
	Limit int `form:"limit"`
}

// QueryCount pairs a query string with how often it was searched.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// PopularResponse is the payload of GET /search/popular.
type PopularResponse struct {
	Queries []QueryCount `json:"queries"`
}

// HistoryQuery binds GET /search/history query params.
type HistoryQuery struct {
	Limit int `form:"limit"`
}

// HistoryEntryResponse is one recorded search of the caller.
type HistoryEntryResponse struct {
	Query       string    `json:"query"`
	ResultCount int       `json:"resultCount"`
	SearchedAt  time.Time `json:"searchedAt"`
}

// HistoryResponse is the payload of GET /search/history.
type HistoryResponse struct {
	Items []HistoryEntryResponse `json:"items"`
}

// AnalyticsQuery binds the reporting window for analytics endpoints.
type AnalyticsQuery struct {
	Days int `form:"days" validate:"omitempty,min=1,max=365"`
}

// TermCount pairs a query term with its frequency.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// UserAnalyticsResponse summarizes the caller's own search behavior.
type UserAnalyticsResponse struct {
	WindowDays          int         `json:"windowDays"`
	TotalSearches       int         `json:"totalSearches"`
	UniqueQueries       int         `json:"uniqueQueries"`
	SuccessRate         float64     `json:"successRate"`
	TopSearchTerms      []TermCount `json:"topSearchTerms"`
	PreferredSearchHour int         `json:"preferredSearchHour"`
	TopCategories       []string    `json:"topCategories"`
}

// DayCount pairs a calendar day (YYYY-MM-DD) with its search volume.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// TrendsResponse summarizes global search behavior over the window.
type TrendsResponse struct {
	WindowDays        int          `json:"windowDays"`
	TrendingQueries   []QueryCount `json:"trendingQueries"`
	DailyVolume       []DayCount   `json:"dailyVolume"`
	ZeroResultQueries []string     `json:"zeroResultQueries"`
}

// QualityResponse summarizes result quality signals over the window.
type QualityResponse struct {
	WindowDays        int          `json:"windowDays"`
	AverageRating     float64      `json:"averageRating"`
	HelpfulPercentage float64      `json:"helpfulPercentage"`
	FeedbackCount     int          `json:"feedbackCount"`
	ZeroResultQueries []string     `json:"zeroResultQueries"`
	AbandonedSearches []QueryCount `json:"abandonedSearches"`
}

// FeedbackRequest is the body of POST /search/feedback.
type FeedbackRequest struct {
	Query      string  `json:"query" validate:"required,max=500"`
	ResultID   string  `json:"resultId" validate:"required,uuid"`
	Rating     int     `json:"rating" validate:"required,min=1,max=5"`
	Feedback   *string `json:"feedback" validate:"omitempty,max=2000"`
	WasHelpful bool    `json:"wasHelpful"`
}

// SimilarQuery binds GET /search/similar/:itemId query params. Type narrows
// the id lookup when the caller knows which content type the id belongs to.
type SimilarQuery struct {
	Type  string `form:"type" validate:"omitempty,oneof=QUESTION FLASHCARD MILITARY_JOB STUDY_GROUP"`
	Limit int    `form:"limit"`
}

// SimilarResponse is the payload of GET /search/similar/:itemId.
type SimilarResponse struct {
	Items []SearchResultItem `json:"items"`
}

// CreatePresetRequest is the body of POST /search/presets.
type CreatePresetRequest struct {
	Name    string        `json:"name" validate:"required,max=80"`
	Filters SearchFilters `json:"filters" validate:"required"`
}

// PresetResponse is one saved filter preset.
type PresetResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Filters   SearchFilters `json:"filters"`
	CreatedAt time.Time     `json:"createdAt"`
}

// PresetListResponse is the payload of GET /search/presets.
type PresetListResponse struct {
	Items []PresetResponse `json:"items"`
}
