package service

import (
	"strings"
	"unicode/utf8"

	"asvab_prep_backend/internal/search/repository"
)

const (
	highlightOpen  = "<mark>"
	highlightClose = "</mark>"
	excerptLength  = 200
)

// buildHighlights returns marked excerpts for the fields that textually
// match the query, title first.
func buildHighlights(item repository.Item, terms []string) []string {
	highlights := make([]string, 0, 2)
	if h, ok := highlightField(item.Title, terms); ok {
		highlights = append(highlights, h)
	}
	if h, ok := highlightField(item.Content, terms); ok {
		highlights = append(highlights, h)
	}
	return highlights
}

// highlightField produces one excerpt with every term occurrence wrapped in
// marker spans. Long text is clipped around the first occurrence so the
// match stays visible. Returns false when no term occurs.
func highlightField(text string, terms []string) (string, bool) {
	lower := strings.ToLower(text)
	first := -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		if idx := strings.Index(lower, term); idx >= 0 && (first == -1 || idx < first) {
			first = idx
		}
	}
	if first == -1 {
		return "", false
	}

	excerpt, clippedHead, clippedTail := clipAround(text, first, excerptLength)
	marked := markTerms(excerpt, terms)
	if clippedHead {
		marked = "..." + marked
	}
	if clippedTail {
		marked += "..."
	}
	return marked, true
}

// clipAround slices at most maxLen bytes around pos, snapped to rune
// boundaries. The position lands in the first third of the window so some
// leading context survives.
func clipAround(text string, pos, maxLen int) (excerpt string, clippedHead, clippedTail bool) {
	if len(text) <= maxLen {
		return text, false, false
	}
	start := pos - maxLen/3
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(text) {
		end = len(text)
		start = end - maxLen
	}
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return text[start:end], start > 0, end < len(text)
}

// markTerms wraps every case-insensitive term occurrence in marker spans,
// preferring the longest term at each position.
func markTerms(text string, terms []string) string {
	lower := strings.ToLower(text)
	var b strings.Builder
	i := 0
	for i < len(text) {
		best, bestLen := -1, 0
		for _, term := range terms {
			if term == "" {
				continue
			}
			idx := strings.Index(lower[i:], term)
			if idx < 0 {
				continue
			}
			pos := i + idx
			if best == -1 || pos < best || (pos == best && len(term) > bestLen) {
				best, bestLen = pos, len(term)
			}
		}
		if best == -1 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i:best])
		b.WriteString(highlightOpen)
		b.WriteString(text[best : best+bestLen])
		b.WriteString(highlightClose)
		i = best + bestLen
	}
	return b.String()
}
