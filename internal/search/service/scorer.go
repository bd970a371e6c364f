package service

import (
	"math"
	"sort"
	"strings"

	"asvab_prep_backend/internal/search/repository"
)

// Scoring weights and boosts. Scores accumulate additively and are only
// comparable within a single search execution.
const (
	titleWeight   = 3.0
	contentWeight = 2.0
	tagWeight     = 1.5

	containsBonus    = 0.3
	occurrenceBonus  = 0.1
	lengthPenaltyCap = 0.1

	popularityBoostCap = 0.5
	popularityDivisor  = 100.0
	conceptBoost       = 0.2

	categoryAffinityBoost   = 0.1
	difficultyAffinityBoost = 0.05
)

const (
	profileAttempts        = 20
	profileTopCategories   = 3
	profileTopDifficulties = 2
)

// userProfile holds the caller's preferred categories and difficulties,
// derived from recent quiz attempts.
type userProfile struct {
	categories   map[string]bool
	difficulties map[string]bool
}

// fieldRelevance scores one text field against the query terms: each
// occurring term adds a contains bonus plus a per-occurrence bonus, a length
// penalty discourages matches buried in long text, and the result is clamped
// to [0, 1].
func fieldRelevance(text string, terms []string) float64 {
	if text == "" || len(terms) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	score := 0.0
	for _, term := range terms {
		count := strings.Count(lower, term)
		if count > 0 {
			score += float64(count) * containsBonus
			score += float64(count) * occurrenceBonus
		}
	}
	score -= math.Min(lengthPenaltyCap, float64(len(text))/1000)
	return clamp01(score)
}

// arrayRelevance is the fraction of query terms matched by at least one tag.
func arrayRelevance(tags, terms []string) float64 {
	if len(tags) == 0 || len(terms) == 0 {
		return 0
	}
	matched := 0
	for _, term := range terms {
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), term) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(terms))
}

// scoreItem accumulates the relevance of one item against a non-empty query.
// Missing fields count as empty; the scorer itself cannot fail.
func scoreItem(item repository.Item, terms, concepts []string, profile *userProfile) float64 {
	score := titleWeight*fieldRelevance(item.Title, terms) +
		contentWeight*fieldRelevance(item.Content, terms) +
		tagWeight*arrayRelevance(item.Tags, terms)
	if item.Category != nil {
		score += fieldRelevance(*item.Category, terms)
	}

	score += math.Min(popularityBoostCap, float64(item.Popularity)/popularityDivisor)

	if len(concepts) > 0 {
		haystack := strings.ToLower(item.Title + " " + item.Content)
		for _, concept := range concepts {
			if strings.Contains(haystack, concept) {
				score += conceptBoost
			}
		}
	}

	if profile != nil {
		if item.Category != nil && profile.categories[*item.Category] {
			score += categoryAffinityBoost
		}
		if item.Difficulty != nil && profile.difficulties[*item.Difficulty] {
			score += difficultyAffinityBoost
		}
	}
	return score
}

// matchedConcepts returns the concepts present in the item's text.
func matchedConcepts(item repository.Item, concepts []string) []string {
	matched := make([]string, 0, len(concepts))
	if len(concepts) == 0 {
		return matched
	}
	haystack := strings.ToLower(item.Title + " " + item.Content)
	for _, concept := range concepts {
		if strings.Contains(haystack, concept) {
			matched = append(matched, concept)
		}
	}
	return matched
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// buildProfile derives the caller's preferred categories and difficulties
// from their most recent quiz attempts.
func buildProfile(attempts []repository.QuizAttemptSummary) *userProfile {
	if len(attempts) == 0 {
		return nil
	}
	catCounts := make(map[string]int)
	diffCounts := make(map[string]int)
	for _, a := range attempts {
		if a.Category != "" {
			catCounts[a.Category]++
		}
		if a.Difficulty != "" {
			diffCounts[a.Difficulty]++
		}
	}
	return &userProfile{
		categories:   topKeys(catCounts, profileTopCategories),
		difficulties: topKeys(diffCounts, profileTopDifficulties),
	}
}

// topKeys returns the n most frequent keys as a set. Ties break
// alphabetically so a profile is stable across calls.
func topKeys(counts map[string]int, n int) map[string]bool {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}
