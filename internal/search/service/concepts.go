package service

import "strings"

// Concept vocabularies. Matching is a substring scan of the lowered query,
// so multi-word entries match as phrases.
var (
	mathConcepts = []string{
		"algebra", "geometry", "fraction", "decimal", "percentage",
		"equation", "arithmetic", "multiplication", "division", "ratio",
		"probability",
	}
	militaryConcepts = []string{
		"army", "navy", "air force", "marines", "coast guard",
		"enlisted", "officer", "asvab", "afqt", "mos", "recruiter",
	}
	subjectConcepts = []string{
		"science", "vocabulary", "reading", "comprehension", "electronics",
		"mechanical", "automotive", "assembling", "word knowledge",
		"paragraph", "shop",
	}
)

// extractConcepts maps a free-text query onto the fixed domain vocabulary.
// Every vocabulary entry contained in the lowered query is returned, in
// vocabulary order. When nothing matches, the query's own tokens longer
// than two characters stand in as concepts.
func extractConcepts(query string) []string {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return nil
	}

	var concepts []string
	for _, vocab := range [][]string{mathConcepts, militaryConcepts, subjectConcepts} {
		for _, term := range vocab {
			if strings.Contains(lower, term) {
				concepts = append(concepts, term)
			}
		}
	}
	if len(concepts) > 0 {
		return concepts
	}

	for _, token := range strings.Fields(lower) {
		if len(token) > 2 {
			concepts = append(concepts, token)
		}
	}
	return concepts
}

// tokenize splits a query on whitespace into lowered terms.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// searchTerms merges query tokens and extracted concepts into one
// deduplicated term list for retrieval.
func searchTerms(tokens, concepts []string) []string {
	seen := make(map[string]bool, len(tokens)+len(concepts))
	terms := make([]string, 0, len(tokens)+len(concepts))
	for _, lists := range [][]string{tokens, concepts} {
		for _, t := range lists {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			terms = append(terms, t)
		}
	}
	return terms
}
