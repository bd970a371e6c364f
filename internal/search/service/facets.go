package service

import (
	"context"
	"time"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
)

// timeRangeBucketDefs defines the cumulative time buckets: an item created
// last week counts in every bucket.
var timeRangeBucketDefs = []struct {
	label string
	days  int
}{
	{"LAST_WEEK", 7},
	{"LAST_MONTH", 30},
	{"LAST_3_MONTHS", 90},
	{"ALL_TIME", 0},
}

// generateFacets aggregates facet counts for the current scope. Category and
// difficulty counts run in the database scoped by the structured filters;
// content-type and time-range buckets come from the matched set; the branch
// facet reflects the whole military job corpus. Each dimension degrades
// independently to an empty slice on failure.
func (s *Service) generateFacets(ctx context.Context, cond repository.ContentConditions, matched []*resultItem) transport.SearchFacets {
	// Free text and bookmarks never scope facets.
	cond.Terms = nil
	cond.BookmarkedIDs = nil

	facets := transport.SearchFacets{
		Categories:   []transport.FacetBucket{},
		Difficulties: []transport.FacetBucket{},
		Branches:     []transport.FacetBucket{},
	}

	if counts, err := s.facets.CategoryCounts(ctx, cond); err != nil {
		s.log.SearchDegraded("category facet", err)
	} else {
		facets.Categories = toFacetBuckets(counts)
	}
	if counts, err := s.facets.DifficultyCounts(ctx, cond); err != nil {
		s.log.SearchDegraded("difficulty facet", err)
	} else {
		facets.Difficulties = toFacetBuckets(counts)
	}
	if counts, err := s.facets.BranchCounts(ctx); err != nil {
		s.log.SearchDegraded("branch facet", err)
	} else {
		facets.Branches = toFacetBuckets(counts)
	}

	facets.ContentTypes = contentTypeBuckets(matched)
	facets.TimeRanges = timeRangeBuckets(matched, time.Now())
	return facets
}

func toFacetBuckets(counts []repository.ValueCount) []transport.FacetBucket {
	buckets := make([]transport.FacetBucket, len(counts))
	for i, vc := range counts {
		buckets[i] = transport.FacetBucket{Value: vc.Value, Count: vc.Count}
	}
	return buckets
}

// contentTypeBuckets counts the matched set per content type, in fixed type
// order.
func contentTypeBuckets(matched []*resultItem) []transport.FacetBucket {
	counts := make(map[string]int, len(repository.AllTypes))
	for _, r := range matched {
		counts[r.item.Type]++
	}
	buckets := make([]transport.FacetBucket, 0, len(repository.AllTypes))
	for _, t := range repository.AllTypes {
		buckets = append(buckets, transport.FacetBucket{Value: t, Count: counts[t]})
	}
	return buckets
}

func timeRangeBuckets(matched []*resultItem, now time.Time) []transport.FacetBucket {
	buckets := make([]transport.FacetBucket, 0, len(timeRangeBucketDefs))
	for _, def := range timeRangeBucketDefs {
		count := len(matched)
		if def.days > 0 {
			cutoff := now.AddDate(0, 0, -def.days)
			count = 0
			for _, r := range matched {
				if !r.item.CreatedAt.Before(cutoff) {
					count++
				}
			}
		}
		buckets = append(buckets, transport.FacetBucket{Value: def.label, Count: count})
	}
	return buckets
}
