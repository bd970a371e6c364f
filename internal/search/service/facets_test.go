package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
)

func TestGenerateFacetsStripsTextAndBookmarkScope(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	cond := repository.ContentConditions{
		Categories:    []string{"MATH"},
		Terms:         []string{"algebra"},
		BookmarkedIDs: []uuid.UUID{uuid.New()},
	}
	svc.generateFacets(context.Background(), cond, nil)

	got := repo.facetCond
	if got.Terms != nil || got.BookmarkedIDs != nil {
		t.Errorf("facet conditions carry terms %v and bookmarks %v, want neither", got.Terms, got.BookmarkedIDs)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "MATH" {
		t.Errorf("facet conditions = %v, want the structured filters kept", got.Categories)
	}
}

func TestGenerateFacetsDegradesPerDimension(t *testing.T) {
	repo := &fakeRepo{
		categoryErr:      errors.New("aggregation failed"),
		difficultyCounts: []repository.ValueCount{{Value: "EASY", Count: 2}},
		branchCounts:     []repository.ValueCount{{Value: "ARMY", Count: 3}},
	}
	svc, _ := newTestService(repo)

	facets := svc.generateFacets(context.Background(), repository.ContentConditions{}, nil)

	if facets.Categories == nil || len(facets.Categories) != 0 {
		t.Errorf("categories = %v, want empty slice on failure", facets.Categories)
	}
	if len(facets.Difficulties) != 1 || facets.Difficulties[0].Value != "EASY" {
		t.Errorf("difficulties = %v", facets.Difficulties)
	}
	if len(facets.Branches) != 1 || facets.Branches[0].Value != "ARMY" {
		t.Errorf("branches = %v", facets.Branches)
	}
}

func TestContentTypeBucketsFixedOrder(t *testing.T) {
	matched := []*resultItem{
		{item: newItem(repository.TypeQuestion, "q1", "")},
		{item: newItem(repository.TypeQuestion, "q2", "")},
		{item: newItem(repository.TypeStudyGroup, "g1", "")},
	}

	got := contentTypeBuckets(matched)
	want := []transport.FacetBucket{
		{Value: "QUESTION", Count: 2},
		{Value: "FLASHCARD", Count: 0},
		{Value: "MILITARY_JOB", Count: 0},
		{Value: "STUDY_GROUP", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTimeRangeBucketsCumulative(t *testing.T) {
	now := time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
	at := func(daysAgo int) *resultItem {
		return &resultItem{item: repository.Item{CreatedAt: now.AddDate(0, 0, -daysAgo)}}
	}
	matched := []*resultItem{at(1), at(20), at(60), at(200)}

	got := timeRangeBuckets(matched, now)
	want := map[string]int{
		"LAST_WEEK":     1,
		"LAST_MONTH":    2,
		"LAST_3_MONTHS": 3,
		"ALL_TIME":      4,
	}
	for _, bucket := range got {
		if bucket.Count != want[bucket.Value] {
			t.Errorf("%s = %d, want %d", bucket.Value, bucket.Count, want[bucket.Value])
		}
	}
}
