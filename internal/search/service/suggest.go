package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	minSuggestionChars    = 2
	maxSuggestions        = 8
	maxHistorySuggestions = 5
	suggestionCacheTTL    = time.Minute
	suggestionCachePrefix = "search:suggest:"
)

// staticSuggestions are the domain phrases offered alongside historical
// queries.
var staticSuggestions = []string{
	"arithmetic reasoning practice",
	"word knowledge drills",
	"paragraph comprehension tips",
	"mathematics knowledge review",
	"general science questions",
	"mechanical comprehension basics",
	"electronics information guide",
	"afqt score requirements",
}

// Suggestions assembles autocomplete suggestions for a partial query:
// recent matching history first, then static phrases with a substring or
// concept overlap. Results are deduplicated case-insensitively and capped.
// Every failure degrades; callers always get a list.
func (s *Service) Suggestions(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < minSuggestionChars {
		return []string{}
	}

	key := suggestionCachePrefix + strings.ToLower(partial)
	var cached []string
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached
	}

	suggestions := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool, maxSuggestions)
	add := func(candidate string) {
		if len(suggestions) >= maxSuggestions || candidate == "" {
			return
		}
		lower := strings.ToLower(candidate)
		if seen[lower] {
			return
		}
		seen[lower] = true
		suggestions = append(suggestions, candidate)
	}

	recent, err := s.history.RecentQueriesMatching(ctx, partial, maxHistorySuggestions)
	if err != nil {
		s.log.SearchDegraded("history suggestions", err)
	} else {
		for _, q := range recent {
			add(q)
		}
	}

	lowerPartial := strings.ToLower(partial)
	concepts := extractConcepts(partial)
	for _, phrase := range staticSuggestions {
		if strings.Contains(phrase, lowerPartial) || overlapsConcepts(phrase, concepts) {
			add(phrase)
		}
	}

	if err := s.cache.SetJSON(ctx, key, suggestions, suggestionCacheTTL); err != nil {
		s.log.SearchDegraded("suggestion cache", err)
	}
	return suggestions
}

func overlapsConcepts(phrase string, concepts []string) bool {
	for _, concept := range concepts {
		if strings.Contains(phrase, concept) {
			return true
		}
	}
	return false
}
