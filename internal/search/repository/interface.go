package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Content type tags carried on normalized items. Ids are type-scoped, so an
// (id, type) pair identifies an item uniquely.
const (
	TypeQuestion    = "QUESTION"
	TypeFlashcard   = "FLASHCARD"
	TypeMilitaryJob = "MILITARY_JOB"
	TypeStudyGroup  = "STUDY_GROUP"
)

// AllTypes lists the content types in the order searches and id probes visit
// them.
var AllTypes = []string{TypeQuestion, TypeFlashcard, TypeMilitaryJob, TypeStudyGroup}

// ContentConditions is the built predicate set for one retrieval pass. Every
// field is optional; zero values impose no constraint. Each per-type read
// interprets only the fields meaningful to that type and always restricts to
// active rows.
type ContentConditions struct {
	Categories   []string
	Difficulties []string
	Tags         []string
	Branch       string
	DateFrom     *time.Time
	DateTo       *time.Time
	// AFQT requirement window, military jobs only.
	MinAFQTScore *int
	MaxAFQTScore *int
	// Estimated time-to-complete window, applied where the type stores one.
	MinSeconds     *int
	MaxSeconds     *int
	HasExplanation *bool
	// Non-nil restricts results to these ids (the caller's bookmarks for the
	// type). Nil means no bookmark constraint.
	BookmarkedIDs []uuid.UUID
	// Free-text terms and extracted concepts, matched as case-insensitive
	// substrings OR'd across the type's text fields. Empty means no text
	// constraint.
	Terms []string
	// Row cap per type. Callers must set it; reads never run unbounded.
	Limit int
}

// Item is the normalized shape every content type is mapped into before
// scoring. Popularity is a type-specific engagement count: quiz attempts for
// questions, review count for flashcards, member count for groups, zero for
// jobs.
type Item struct {
	ID               uuid.UUID
	Type             string
	Title            string
	Content          string
	Category         *string
	Difficulty       *string
	Tags             []string
	Popularity       int
	Branch           *string
	EstimatedSeconds *int
	HasExplanation   bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Repository bundles every search read/write surface. *Repo implements all
// of them; the service depends on the narrow slices.
type Repository interface {
	ContentRepository
	FacetsRepository
	HistoryRepository
	FeedbackRepository
	PresetsRepository
	InteractionsRepository
}

// ContentRepository runs the bounded per-type retrieval reads.
type ContentRepository interface {
	SearchQuestions(ctx context.Context, cond ContentConditions) ([]Item, error)
	SearchFlashcards(ctx context.Context, cond ContentConditions) ([]Item, error)
	SearchMilitaryJobs(ctx context.Context, cond ContentConditions) ([]Item, error)
	SearchStudyGroups(ctx context.Context, cond ContentConditions) ([]Item, error)
	// FindItem loads a single item by type-scoped id. Returns false when no
	// active row matches.
	FindItem(ctx context.Context, contentType string, id uuid.UUID) (Item, bool, error)
}

// ValueCount is one facet bucket as returned by aggregation queries.
type ValueCount struct {
	Value string
	Count int
}

// FacetsRepository aggregates facet counts. Category and difficulty counts
// run over questions and flashcards combined, scoped by the structured
// conditions; branch counts cover the military job corpus.
type FacetsRepository interface {
	CategoryCounts(ctx context.Context, cond ContentConditions) ([]ValueCount, error)
	DifficultyCounts(ctx context.Context, cond ContentConditions) ([]ValueCount, error)
	BranchCounts(ctx context.Context) ([]ValueCount, error)
}

// HistoryEntry is one persisted search execution.
type HistoryEntry struct {
	Query       string
	ResultCount int
	SearchedAt  time.Time
}

// QueryCount pairs a normalized query with its frequency over a window.
type QueryCount struct {
	Query string
	Count int
}

// DayCount pairs a calendar day with its search volume.
type DayCount struct {
	Day   time.Time
	Count int
}

// QuizAttemptSummary is the slice of a quiz attempt that feeds search
// personalization and analytics.
type QuizAttemptSummary struct {
	Category   string
	Difficulty string
}

// HistoryRepository persists and aggregates search history.
type HistoryRepository interface {
	RecordSearch(ctx context.Context, userID uuid.UUID, query string, resultCount int) error
	ListHistory(ctx context.Context, userID uuid.UUID, limit int) ([]HistoryEntry, error)
	// ListHistorySince returns the caller's history inside the window, most
	// recent first, capped to limit rows.
	ListHistorySince(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]HistoryEntry, error)
	// RecentQueriesMatching returns the most recent distinct queries
	// containing the partial, case-insensitively.
	RecentQueriesMatching(ctx context.Context, partial string, limit int) ([]string, error)
	TrendingQueries(ctx context.Context, since time.Time, limit int) ([]QueryCount, error)
	DailyVolume(ctx context.Context, since time.Time) ([]DayCount, error)
	ZeroResultQueries(ctx context.Context, since time.Time, limit int) ([]string, error)
	// AbandonedQueries returns queries one user repeated more than minRepeats
	// times inside the window, a proxy for searches that never satisfied.
	AbandonedQueries(ctx context.Context, since time.Time, minRepeats, limit int) ([]QueryCount, error)
	// RecentQuizAttempts feeds personalization and the top-categories proxy.
	RecentQuizAttempts(ctx context.Context, userID uuid.UUID, limit int) ([]QuizAttemptSummary, error)
}

// CreateFeedbackParams captures one feedback submission.
type CreateFeedbackParams struct {
	UserID     uuid.UUID
	Query      string
	ResultID   uuid.UUID
	Rating     int
	Feedback   *string
	WasHelpful bool
}

// FeedbackStats are the aggregate quality signals from feedback rows.
type FeedbackStats struct {
	AverageRating     float64
	HelpfulPercentage float64
	Total             int
}

// FeedbackRepository persists and aggregates result feedback.
type FeedbackRepository interface {
	RecordFeedback(ctx context.Context, params CreateFeedbackParams) error
	Stats(ctx context.Context, since time.Time) (FeedbackStats, error)
}

// Preset is one saved filter preset row. Filters hold the JSON document
// exactly as stored.
type Preset struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Filters   []byte
	CreatedAt time.Time
}

// PresetsRepository persists named filter presets, unique per user and name.
type PresetsRepository interface {
	CreatePreset(ctx context.Context, userID uuid.UUID, name string, filters []byte) (Preset, error)
	ListPresets(ctx context.Context, userID uuid.UUID) ([]Preset, error)
}

// BookmarkRef identifies one bookmarked item.
type BookmarkRef struct {
	ContentType string
	ContentID   uuid.UUID
}

// QuestionStats aggregates one user's attempts against one question.
type QuestionStats struct {
	QuestionID       uuid.UUID
	Attempts         int
	Correct          int
	TimeSpentSeconds int
	LastAttempted    time.Time
}

// InteractionsRepository serves the per-user enrichment reads.
type InteractionsRepository interface {
	// BookmarksFor returns which of the given ids the user has bookmarked,
	// regardless of content type.
	BookmarksFor(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]BookmarkRef, error)
	// BookmarkedIDsByType returns all of the user's bookmarks grouped by
	// content type, for the bookmark filter.
	BookmarkedIDsByType(ctx context.Context, userID uuid.UUID) (map[string][]uuid.UUID, error)
	// QuestionStatsFor aggregates the user's attempts over the given
	// question ids.
	QuestionStatsFor(ctx context.Context, userID uuid.UUID, questionIDs []uuid.UUID) ([]QuestionStats, error)
}
