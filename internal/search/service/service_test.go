package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/cache"
	"asvab_prep_backend/platform/logger"
)

type recordedSearch struct {
	userID      uuid.UUID
	query       string
	resultCount int
}

// fakeRepo implements the full repository surface in memory. Search reads
// honor the bookmark id restriction so scope tests exercise real filtering;
// free-text matching stays with the scorer.
type fakeRepo struct {
	mu sync.Mutex

	questions  []repository.Item
	flashcards []repository.Item
	jobs       []repository.Item
	groups     []repository.Item
	searchErr  error
	findErr    error

	searchedTypes []string
	conds         map[string]repository.ContentConditions
	findCalls     []string

	categoryCounts   []repository.ValueCount
	difficultyCounts []repository.ValueCount
	branchCounts     []repository.ValueCount
	categoryErr      error
	difficultyErr    error
	branchErr        error
	facetCond        repository.ContentConditions

	searches         []recordedSearch
	recordErr        error
	historyEntries   []repository.HistoryEntry
	listErr          error
	listSinceErr     error
	lastHistoryLimit int
	recentQueries    []string
	recentErr        error
	lastPartial      string
	trending         []repository.QueryCount
	trendingErr      error
	lastTrendingN    int
	volume           []repository.DayCount
	volumeErr        error
	zeroResult       []string
	zeroErr          error
	abandoned        []repository.QueryCount
	abandonedErr     error
	quizAttempts     []repository.QuizAttemptSummary
	quizErr          error

	feedback    []repository.CreateFeedbackParams
	feedbackErr error
	stats       repository.FeedbackStats
	statsErr    error

	presetRows      []repository.Preset
	createPresetErr error
	listPresetsErr  error

	bookmarkRefs     []repository.BookmarkRef
	bookmarksErr     error
	bookmarksCalled  bool
	bookmarksByType  map[string][]uuid.UUID
	byTypeErr        error
	questionStats    []repository.QuestionStats
	questionStatsErr error
}

var _ repository.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) search(contentType string, items []repository.Item, cond repository.ContentConditions) ([]repository.Item, error) {
	f.mu.Lock()
	if f.conds == nil {
		f.conds = make(map[string]repository.ContentConditions)
	}
	f.conds[contentType] = cond
	f.searchedTypes = append(f.searchedTypes, contentType)
	f.mu.Unlock()

	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if cond.BookmarkedIDs == nil {
		return items, nil
	}
	allowed := make(map[uuid.UUID]bool, len(cond.BookmarkedIDs))
	for _, id := range cond.BookmarkedIDs {
		allowed[id] = true
	}
	kept := make([]repository.Item, 0, len(items))
	for _, it := range items {
		if allowed[it.ID] {
			kept = append(kept, it)
		}
	}
	return kept, nil
}

func (f *fakeRepo) SearchQuestions(_ context.Context, cond repository.ContentConditions) ([]repository.Item, error) {
	return f.search(repository.TypeQuestion, f.questions, cond)
}

func (f *fakeRepo) SearchFlashcards(_ context.Context, cond repository.ContentConditions) ([]repository.Item, error) {
	return f.search(repository.TypeFlashcard, f.flashcards, cond)
}

func (f *fakeRepo) SearchMilitaryJobs(_ context.Context, cond repository.ContentConditions) ([]repository.Item, error) {
	return f.search(repository.TypeMilitaryJob, f.jobs, cond)
}

func (f *fakeRepo) SearchStudyGroups(_ context.Context, cond repository.ContentConditions) ([]repository.Item, error) {
	return f.search(repository.TypeStudyGroup, f.groups, cond)
}

func (f *fakeRepo) FindItem(_ context.Context, contentType string, id uuid.UUID) (repository.Item, bool, error) {
	f.mu.Lock()
	f.findCalls = append(f.findCalls, contentType)
	f.mu.Unlock()
	if f.findErr != nil {
		return repository.Item{}, false, f.findErr
	}
	var items []repository.Item
	switch contentType {
	case repository.TypeQuestion:
		items = f.questions
	case repository.TypeFlashcard:
		items = f.flashcards
	case repository.TypeMilitaryJob:
		items = f.jobs
	case repository.TypeStudyGroup:
		items = f.groups
	}
	for _, it := range items {
		if it.ID == id {
			return it, true, nil
		}
	}
	return repository.Item{}, false, nil
}

func (f *fakeRepo) CategoryCounts(_ context.Context, cond repository.ContentConditions) ([]repository.ValueCount, error) {
	f.mu.Lock()
	f.facetCond = cond
	f.mu.Unlock()
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.categoryCounts, nil
}

func (f *fakeRepo) DifficultyCounts(_ context.Context, cond repository.ContentConditions) ([]repository.ValueCount, error) {
	f.mu.Lock()
	f.facetCond = cond
	f.mu.Unlock()
	if f.difficultyErr != nil {
		return nil, f.difficultyErr
	}
	return f.difficultyCounts, nil
}

func (f *fakeRepo) BranchCounts(context.Context) ([]repository.ValueCount, error) {
	if f.branchErr != nil {
		return nil, f.branchErr
	}
	return f.branchCounts, nil
}

func (f *fakeRepo) RecordSearch(_ context.Context, userID uuid.UUID, query string, resultCount int) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, recordedSearch{userID: userID, query: query, resultCount: resultCount})
	return nil
}

func (f *fakeRepo) ListHistory(_ context.Context, _ uuid.UUID, limit int) ([]repository.HistoryEntry, error) {
	f.mu.Lock()
	f.lastHistoryLimit = limit
	f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	entries := f.historyEntries
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (f *fakeRepo) ListHistorySince(_ context.Context, _ uuid.UUID, _ time.Time, limit int) ([]repository.HistoryEntry, error) {
	if f.listSinceErr != nil {
		return nil, f.listSinceErr
	}
	entries := f.historyEntries
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (f *fakeRepo) RecentQueriesMatching(_ context.Context, partial string, limit int) ([]string, error) {
	f.mu.Lock()
	f.lastPartial = partial
	f.mu.Unlock()
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	queries := f.recentQueries
	if len(queries) > limit {
		queries = queries[:limit]
	}
	return queries, nil
}

func (f *fakeRepo) TrendingQueries(_ context.Context, _ time.Time, limit int) ([]repository.QueryCount, error) {
	f.mu.Lock()
	f.lastTrendingN = limit
	f.mu.Unlock()
	if f.trendingErr != nil {
		return nil, f.trendingErr
	}
	return f.trending, nil
}

func (f *fakeRepo) DailyVolume(context.Context, time.Time) ([]repository.DayCount, error) {
	if f.volumeErr != nil {
		return nil, f.volumeErr
	}
	return f.volume, nil
}

func (f *fakeRepo) ZeroResultQueries(context.Context, time.Time, int) ([]string, error) {
	if f.zeroErr != nil {
		return nil, f.zeroErr
	}
	return f.zeroResult, nil
}

func (f *fakeRepo) AbandonedQueries(context.Context, time.Time, int, int) ([]repository.QueryCount, error) {
	if f.abandonedErr != nil {
		return nil, f.abandonedErr
	}
	return f.abandoned, nil
}

func (f *fakeRepo) RecentQuizAttempts(context.Context, uuid.UUID, int) ([]repository.QuizAttemptSummary, error) {
	if f.quizErr != nil {
		return nil, f.quizErr
	}
	return f.quizAttempts, nil
}

func (f *fakeRepo) RecordFeedback(_ context.Context, params repository.CreateFeedbackParams) error {
	if f.feedbackErr != nil {
		return f.feedbackErr
	}
	f.feedback = append(f.feedback, params)
	return nil
}

func (f *fakeRepo) Stats(context.Context, time.Time) (repository.FeedbackStats, error) {
	if f.statsErr != nil {
		return repository.FeedbackStats{}, f.statsErr
	}
	return f.stats, nil
}

func (f *fakeRepo) CreatePreset(_ context.Context, userID uuid.UUID, name string, filters []byte) (repository.Preset, error) {
	if f.createPresetErr != nil {
		return repository.Preset{}, f.createPresetErr
	}
	p := repository.Preset{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Filters:   filters,
		CreatedAt: time.Now(),
	}
	f.presetRows = append(f.presetRows, p)
	return p, nil
}

func (f *fakeRepo) ListPresets(context.Context, uuid.UUID) ([]repository.Preset, error) {
	if f.listPresetsErr != nil {
		return nil, f.listPresetsErr
	}
	return f.presetRows, nil
}

func (f *fakeRepo) BookmarksFor(_ context.Context, _ uuid.UUID, ids []uuid.UUID) ([]repository.BookmarkRef, error) {
	f.mu.Lock()
	f.bookmarksCalled = true
	f.mu.Unlock()
	if f.bookmarksErr != nil {
		return nil, f.bookmarksErr
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	refs := make([]repository.BookmarkRef, 0, len(f.bookmarkRefs))
	for _, ref := range f.bookmarkRefs {
		if wanted[ref.ContentID] {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (f *fakeRepo) BookmarkedIDsByType(context.Context, uuid.UUID) (map[string][]uuid.UUID, error) {
	if f.byTypeErr != nil {
		return nil, f.byTypeErr
	}
	return f.bookmarksByType, nil
}

func (f *fakeRepo) QuestionStatsFor(context.Context, uuid.UUID, []uuid.UUID) ([]repository.QuestionStats, error) {
	if f.questionStatsErr != nil {
		return nil, f.questionStatsErr
	}
	return f.questionStats, nil
}

func (f *fakeRepo) typesSearched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchedTypes...)
}

func (f *fakeRepo) condFor(contentType string) repository.ContentConditions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conds[contentType]
}

func (f *fakeRepo) recordedSearches() []recordedSearch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedSearch(nil), f.searches...)
}

func newItem(contentType, title, content string) repository.Item {
	now := time.Now()
	return repository.Item{
		ID:        uuid.New(),
		Type:      contentType,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTestService(repo *fakeRepo) (*Service, *events.InMemoryBus) {
	return newTestServiceWithCache(repo, cache.NewNoop())
}

func newTestServiceWithCache(repo *fakeRepo, c cache.Cache) (*Service, *events.InMemoryBus) {
	log := logger.New("development")
	bus := events.NewInMemoryBus(log)
	svc := New(repo, c, bus, log)
	svc.RegisterHandlers(bus)
	return svc, bus
}

func newMiniredisCache(t *testing.T) cache.Cache {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := cache.NewRedis(context.Background(), "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAdvancedSearchRanksTextMatchesFirst(t *testing.T) {
	mathItem := newItem(repository.TypeQuestion, "Basic math problem", "Solve 4 x 12 without a calculator.")
	otherItem := newItem(repository.TypeQuestion, "History fact", "The treaty was signed in 1945.")
	repo := &fakeRepo{questions: []repository.Item{otherItem, mathItem}}
	svc, _ := newTestService(repo)

	resp, err := svc.AdvancedSearch(context.Background(), uuid.Nil, transport.AdvancedSearchRequest{
		Query:   "math",
		Filters: &transport.SearchFilters{ContentType: "QUESTIONS"},
	})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}

	if resp.TotalCount != 2 {
		t.Fatalf("totalCount = %d, want 2", resp.TotalCount)
	}
	if resp.Items[0].Title != "Basic math problem" {
		t.Errorf("top result = %q, want the math question", resp.Items[0].Title)
	}
	if resp.Items[0].RelevanceScore <= resp.Items[1].RelevanceScore {
		t.Errorf("scores = %v vs %v, want text match ranked strictly higher",
			resp.Items[0].RelevanceScore, resp.Items[1].RelevanceScore)
	}
	if len(resp.Items[0].Highlights) == 0 || !strings.Contains(resp.Items[0].Highlights[0], "<mark>math</mark>") {
		t.Errorf("highlights = %v, want marked term in title excerpt", resp.Items[0].Highlights)
	}
	if len(resp.Items[1].Highlights) != 0 {
		t.Errorf("unrelated item highlights = %v, want none", resp.Items[1].Highlights)
	}
}

func TestAdvancedSearchEmptyQueryScoresUniformly(t *testing.T) {
	repo := &fakeRepo{questions: []repository.Item{
		newItem(repository.TypeQuestion, "First", "Alpha content."),
		newItem(repository.TypeQuestion, "Second", "Beta content."),
	}}
	svc, _ := newTestService(repo)

	resp, err := svc.AdvancedSearch(context.Background(), uuid.Nil, transport.AdvancedSearchRequest{Query: "   "})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}

	for _, item := range resp.Items {
		if item.RelevanceScore != 1.0 {
			t.Errorf("score = %v for %q, want exactly 1.0 on an empty query", item.RelevanceScore, item.Title)
		}
		if len(item.Highlights) != 0 {
			t.Errorf("highlights = %v for %q, want empty on an empty query", item.Highlights, item.Title)
		}
	}
}

func TestAdvancedSearchPaginatesStably(t *testing.T) {
	repo := &fakeRepo{}
	for i := 1; i <= 5; i++ {
		repo.questions = append(repo.questions, newItem(repository.TypeQuestion, fmt.Sprintf("question %d", i), "content"))
	}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.AdvancedSearch(ctx, uuid.Nil, transport.AdvancedSearchRequest{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	if resp.TotalCount != 5 {
		t.Errorf("totalCount = %d, want 5", resp.TotalCount)
	}
	if len(resp.Items) != 2 || resp.Items[0].Title != "question 3" || resp.Items[1].Title != "question 4" {
		t.Errorf("page 2 = %v, want questions 3 and 4 in retrieval order", titles(resp.Items))
	}
	if !resp.HasMore {
		t.Error("hasMore = false on page 2 of 5 items with limit 2, want true")
	}

	resp, err = svc.AdvancedSearch(ctx, uuid.Nil, transport.AdvancedSearchRequest{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "question 5" {
		t.Errorf("page 3 = %v, want the last question", titles(resp.Items))
	}
	if resp.HasMore {
		t.Error("hasMore = true on the final page, want false")
	}
}

func titles(items []transport.SearchResultItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func TestAdvancedSearchClampsPaging(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.AdvancedSearch(ctx, uuid.Nil, transport.AdvancedSearchRequest{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	if resp.Page != 1 {
		t.Errorf("page = %d, want clamped to 1", resp.Page)
	}
	if resp.Limit != 100 {
		t.Errorf("limit = %d, want capped at 100", resp.Limit)
	}

	resp, err = svc.AdvancedSearch(ctx, uuid.Nil, transport.AdvancedSearchRequest{})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	if resp.Limit != 20 {
		t.Errorf("limit = %d, want default 20", resp.Limit)
	}
}

func TestAdvancedSearchScopesContentType(t *testing.T) {
	tests := []struct {
		selector string
		want     []string
	}{
		{"QUESTIONS", []string{repository.TypeQuestion}},
		{"STUDY_GROUPS", []string{repository.TypeStudyGroup}},
		{"ALL", repository.AllTypes},
		{"", repository.AllTypes},
	}
	for _, tt := range tests {
		repo := &fakeRepo{}
		svc, _ := newTestService(repo)

		_, err := svc.AdvancedSearch(context.Background(), uuid.Nil, transport.AdvancedSearchRequest{
			Filters: &transport.SearchFilters{ContentType: tt.selector},
		})
		if err != nil {
			t.Fatalf("AdvancedSearch(%q): %v", tt.selector, err)
		}

		got := repo.typesSearched()
		sort.Strings(got)
		want := append([]string(nil), tt.want...)
		sort.Strings(want)
		if len(got) != len(want) {
			t.Errorf("selector %q searched %v, want %v", tt.selector, got, want)
			continue
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("selector %q searched %v, want %v", tt.selector, got, want)
				break
			}
		}
	}
}

func TestAdvancedSearchRetrievalFailure(t *testing.T) {
	repo := &fakeRepo{searchErr: errors.New("connection refused")}
	svc, _ := newTestService(repo)

	_, err := svc.AdvancedSearch(context.Background(), uuid.Nil, transport.AdvancedSearchRequest{Query: "math"})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("err = %v, want internal error", err)
	}
}

func TestAdvancedSearchRecordsHistoryThroughBus(t *testing.T) {
	repo := &fakeRepo{questions: []repository.Item{newItem(repository.TypeQuestion, "Algebra drill", "Solve for x.")}}
	svc, bus := newTestService(repo)
	userID := uuid.New()

	resp, err := svc.AdvancedSearch(context.Background(), userID, transport.AdvancedSearchRequest{Query: "algebra"})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}
	bus.Wait()

	searches := repo.recordedSearches()
	if len(searches) != 1 {
		t.Fatalf("recorded %d searches, want 1", len(searches))
	}
	if searches[0].userID != userID || searches[0].query != "algebra" {
		t.Errorf("recorded = %+v, want caller's query", searches[0])
	}
	if searches[0].resultCount != resp.TotalCount {
		t.Errorf("recorded resultCount = %d, want %d", searches[0].resultCount, resp.TotalCount)
	}
}

func TestAdvancedSearchSkipsHistoryForAnonymousCaller(t *testing.T) {
	repo := &fakeRepo{questions: []repository.Item{newItem(repository.TypeQuestion, "Algebra drill", "Solve for x.")}}
	svc, bus := newTestService(repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.AdvancedSearch(context.Background(), uuid.Nil, transport.AdvancedSearchRequest{Query: "algebra"}); err != nil {
			t.Fatalf("AdvancedSearch: %v", err)
		}
	}
	bus.Wait()

	if n := len(repo.recordedSearches()); n != 0 {
		t.Errorf("recorded %d searches for an anonymous caller, want 0", n)
	}
}

func TestAdvancedSearchBookmarkFilterLimitsToBookmarked(t *testing.T) {
	bookmarked := newItem(repository.TypeQuestion, "Saved question", "Keep this one.")
	other := newItem(repository.TypeQuestion, "Other question", "Not saved.")
	card := newItem(repository.TypeFlashcard, "Some card", "Front and back.")
	repo := &fakeRepo{
		questions:       []repository.Item{bookmarked, other},
		flashcards:      []repository.Item{card},
		bookmarksByType: map[string][]uuid.UUID{repository.TypeQuestion: {bookmarked.ID}},
	}
	svc, _ := newTestService(repo)

	isBookmarked := true
	resp, err := svc.AdvancedSearch(context.Background(), uuid.New(), transport.AdvancedSearchRequest{
		Filters: &transport.SearchFilters{IsBookmarked: &isBookmarked},
	})
	if err != nil {
		t.Fatalf("AdvancedSearch: %v", err)
	}

	if resp.TotalCount != 1 || resp.Items[0].ID != bookmarked.ID {
		t.Errorf("results = %v, want only the bookmarked question", titles(resp.Items))
	}
	cond := repo.condFor(repository.TypeFlashcard)
	if cond.BookmarkedIDs == nil || len(cond.BookmarkedIDs) != 0 {
		t.Errorf("flashcard conditions = %v, want an empty bookmark set for a type with no bookmarks", cond.BookmarkedIDs)
	}
}

func TestAdvancedSearchBookmarkResolutionFailure(t *testing.T) {
	repo := &fakeRepo{byTypeErr: errors.New("bookmarks unavailable")}
	svc, _ := newTestService(repo)

	isBookmarked := true
	_, err := svc.AdvancedSearch(context.Background(), uuid.New(), transport.AdvancedSearchRequest{
		Filters: &transport.SearchFilters{IsBookmarked: &isBookmarked},
	})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("err = %v, want internal error when the bookmark filter cannot be resolved", err)
	}
}

func TestSemanticSearchClampsSimilarity(t *testing.T) {
	algebra := newItem(repository.TypeQuestion, "Algebra equations", "Solve for x in each algebra problem.")
	geometry := newItem(repository.TypeFlashcard, "Geometry shapes", "Angles and triangles.")
	repo := &fakeRepo{
		questions:  []repository.Item{algebra},
		flashcards: []repository.Item{geometry},
	}
	svc, _ := newTestService(repo)

	resp, err := svc.SemanticSearch(context.Background(), uuid.Nil, transport.SemanticSearchQuery{Query: "algebra practice"})
	if err != nil {
		t.Fatalf("SemanticSearch: %v", err)
	}

	if resp.Query != "algebra practice" {
		t.Errorf("query echoed as %q", resp.Query)
	}
	if len(resp.Items) != 2 || resp.Items[0].ID != algebra.ID {
		t.Fatalf("items = %d, want the algebra question ranked first", len(resp.Items))
	}
	if resp.Items[0].SemanticSimilarity != 1.0 {
		t.Errorf("similarity = %v, want clamped to 1.0", resp.Items[0].SemanticSimilarity)
	}
	if len(resp.Items[0].MatchedConcepts) != 1 || resp.Items[0].MatchedConcepts[0] != "algebra" {
		t.Errorf("matchedConcepts = %v, want [algebra]", resp.Items[0].MatchedConcepts)
	}
	for _, item := range resp.Items {
		if item.SemanticSimilarity < 0 || item.SemanticSimilarity > 1 {
			t.Errorf("similarity %v for %q outside [0, 1]", item.SemanticSimilarity, item.Title)
		}
	}
}

func TestSemanticSearchCapsLimit(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 60; i++ {
		repo.flashcards = append(repo.flashcards, newItem(repository.TypeFlashcard, fmt.Sprintf("algebra card %d", i), "algebra notes"))
	}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	resp, err := svc.SemanticSearch(ctx, uuid.Nil, transport.SemanticSearchQuery{Query: "algebra", Limit: 200})
	if err != nil {
		t.Fatalf("SemanticSearch: %v", err)
	}
	if len(resp.Items) != 50 {
		t.Errorf("items = %d, want capped at 50", len(resp.Items))
	}

	resp, err = svc.SemanticSearch(ctx, uuid.Nil, transport.SemanticSearchQuery{Query: "algebra"})
	if err != nil {
		t.Fatalf("SemanticSearch: %v", err)
	}
	if len(resp.Items) != 20 {
		t.Errorf("items = %d, want default 20", len(resp.Items))
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	repo := &fakeRepo{historyEntries: []repository.HistoryEntry{
		{Query: "navy jobs", ResultCount: 3, SearchedAt: time.Now()},
	}}
	svc, _ := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	resp, err := svc.History(ctx, userID, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if repo.lastHistoryLimit != 20 {
		t.Errorf("limit = %d, want default 20", repo.lastHistoryLimit)
	}
	if len(resp.Items) != 1 || resp.Items[0].Query != "navy jobs" {
		t.Errorf("items = %+v, want the stored entry", resp.Items)
	}

	if _, err := svc.History(ctx, userID, 900); err != nil {
		t.Fatalf("History: %v", err)
	}
	if repo.lastHistoryLimit != 100 {
		t.Errorf("limit = %d, want capped at 100", repo.lastHistoryLimit)
	}
}

func TestHistoryPropagatesReadFailure(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("history unavailable")}
	svc, _ := newTestService(repo)

	if _, err := svc.History(context.Background(), uuid.New(), 10); err == nil {
		t.Error("expected error when the history read fails")
	}
}
