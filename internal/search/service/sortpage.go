package service

import "sort"

// Sort fields and orders accepted by the search endpoints.
const (
	SortRelevance      = "RELEVANCE"
	SortDate           = "DATE"
	SortDifficulty     = "DIFFICULTY"
	SortPopularity     = "POPULARITY"
	SortAccuracy       = "ACCURACY"
	SortTimeToComplete = "TIME_TO_COMPLETE"

	OrderAsc  = "ASC"
	OrderDesc = "DESC"
)

// difficultyRank orders difficulties for sorting. Unknown values rank as
// MEDIUM.
var difficultyRank = map[string]int{
	"EASY":   1,
	"MEDIUM": 2,
	"HARD":   3,
}

func rankDifficulty(difficulty *string) int {
	if difficulty == nil {
		return difficultyRank["MEDIUM"]
	}
	if rank, ok := difficultyRank[*difficulty]; ok {
		return rank
	}
	return difficultyRank["MEDIUM"]
}

// sortResults stable-sorts the scored set. Each field has a base direction
// (relevance, date, popularity and accuracy rank high-to-low; difficulty and
// time-to-complete low-to-high); ASC inverts the base comparator.
func sortResults(results []*resultItem, field, order string) {
	var less func(a, b *resultItem) bool
	switch field {
	case SortDate:
		less = func(a, b *resultItem) bool { return a.item.CreatedAt.After(b.item.CreatedAt) }
	case SortDifficulty:
		less = func(a, b *resultItem) bool {
			return rankDifficulty(a.item.Difficulty) < rankDifficulty(b.item.Difficulty)
		}
	case SortPopularity:
		less = func(a, b *resultItem) bool { return a.item.Popularity > b.item.Popularity }
	case SortAccuracy:
		less = func(a, b *resultItem) bool { return a.accuracy() > b.accuracy() }
	case SortTimeToComplete:
		less = func(a, b *resultItem) bool { return a.estimatedSeconds() < b.estimatedSeconds() }
	default:
		less = func(a, b *resultItem) bool { return a.score > b.score }
	}
	if order == OrderAsc {
		base := less
		less = func(a, b *resultItem) bool { return base(b, a) }
	}
	sort.SliceStable(results, func(i, j int) bool { return less(results[i], results[j]) })
}

// paginate slices one page out of the full result set.
func paginate(results []*resultItem, page, limit int) []*resultItem {
	start := (page - 1) * limit
	if start >= len(results) {
		return []*resultItem{}
	}
	end := start + limit
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}
