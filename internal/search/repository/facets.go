package repository

import (
	"context"
	"fmt"
	"strings"
)

var _ FacetsRepository = (*Repo)(nil)

type facetTable int

const (
	facetTableQuestions facetTable = iota
	facetTableFlashcards
)

// buildFacetWhere renders the structured conditions for one source table of
// the combined facet query. Free-text terms never scope facets.
func buildFacetWhere(t facetTable, cond ContentConditions, args *[]interface{}, argIdx *int) string {
	where := []string{"is_active = TRUE"}
	add := func(clause string, value interface{}) {
		where = append(where, fmt.Sprintf(clause, *argIdx))
		*args = append(*args, value)
		*argIdx++
	}

	if len(cond.Categories) > 0 {
		add("category = ANY($%d)", cond.Categories)
	}
	if len(cond.Difficulties) > 0 {
		add("difficulty = ANY($%d)", cond.Difficulties)
	}
	if len(cond.Tags) > 0 {
		add("tags && $%d", cond.Tags)
	}
	if cond.DateFrom != nil {
		add("created_at >= $%d", *cond.DateFrom)
	}
	if cond.DateTo != nil {
		add("created_at <= $%d", *cond.DateTo)
	}
	if cond.MinSeconds != nil {
		add("estimated_seconds >= $%d", *cond.MinSeconds)
	}
	if cond.MaxSeconds != nil {
		add("estimated_seconds <= $%d", *cond.MaxSeconds)
	}
	if cond.BookmarkedIDs != nil {
		add("id = ANY($%d)", cond.BookmarkedIDs)
	}
	if t == facetTableQuestions {
		if cond.Branch != "" {
			add("branch = $%d", cond.Branch)
		}
		if cond.HasExplanation != nil {
			if *cond.HasExplanation {
				where = append(where, "explanation IS NOT NULL AND explanation <> ''")
			} else {
				where = append(where, "(explanation IS NULL OR explanation = '')")
			}
		}
	}
	return strings.Join(where, " AND ")
}

// contentFacetCounts groups questions and flashcards matching the structured
// conditions by the given column.
func (r *Repo) contentFacetCounts(ctx context.Context, column string, cond ContentConditions) ([]ValueCount, error) {
	var args []interface{}
	argIdx := 1

	qWhere := buildFacetWhere(facetTableQuestions, cond, &args, &argIdx)
	fWhere := buildFacetWhere(facetTableFlashcards, cond, &args, &argIdx)

	query := fmt.Sprintf(`
		SELECT %s AS value, COUNT(*) AS n
		FROM (
			SELECT category, difficulty FROM questions WHERE %s
			UNION ALL
			SELECT category, difficulty FROM flashcards WHERE %s
		) content
		GROUP BY value
		ORDER BY n DESC, value ASC`, column, qWhere, fWhere)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s facet counts: %w", column, err)
	}
	defer rows.Close()

	counts := make([]ValueCount, 0)
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, fmt.Errorf("scan %s facet: %w", column, err)
		}
		counts = append(counts, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s facet counts: %w", column, err)
	}
	return counts, nil
}

// CategoryCounts aggregates category counts over questions and flashcards.
func (r *Repo) CategoryCounts(ctx context.Context, cond ContentConditions) ([]ValueCount, error) {
	return r.contentFacetCounts(ctx, "category", cond)
}

// DifficultyCounts aggregates difficulty counts over questions and flashcards.
func (r *Repo) DifficultyCounts(ctx context.Context, cond ContentConditions) ([]ValueCount, error) {
	return r.contentFacetCounts(ctx, "difficulty", cond)
}

// BranchCounts returns the military job distribution per branch across the
// whole active corpus.
func (r *Repo) BranchCounts(ctx context.Context) ([]ValueCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT branch, COUNT(*) AS n
		FROM military_jobs
		WHERE is_active = TRUE
		GROUP BY branch
		ORDER BY n DESC, branch ASC`)
	if err != nil {
		return nil, fmt.Errorf("branch facet counts: %w", err)
	}
	defer rows.Close()

	counts := make([]ValueCount, 0)
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, fmt.Errorf("scan branch facet: %w", err)
		}
		counts = append(counts, vc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("branch facet counts: %w", err)
	}
	return counts, nil
}
