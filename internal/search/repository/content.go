// Package repository provides data access for the search module.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the search repositories backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a search repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ ContentRepository = (*Repo)(nil)

// textClause builds one OR-group matching any term as a case-insensitive
// substring of any column. Terms share one placeholder each across columns.
func textClause(columns []string, terms []string, args *[]interface{}, argIdx *int) (string, bool) {
	if len(terms) == 0 {
		return "", false
	}
	ors := make([]string, 0, len(columns)*len(terms))
	for _, term := range terms {
		*args = append(*args, "%"+term+"%")
		for _, col := range columns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, *argIdx))
		}
		*argIdx++
	}
	return "(" + strings.Join(ors, " OR ") + ")", true
}

// questionPopularityJoin counts quiz attempts per question, the engagement
// signal behind a question's popularity.
const questionPopularityJoin = `
	LEFT JOIN (
		SELECT question_id, COUNT(*) AS attempts
		FROM quiz_question_attempts
		GROUP BY question_id
	) pa ON pa.question_id = q.id`

// SearchQuestions retrieves active questions matching the conditions, capped
// at cond.Limit rows.
func (r *Repo) SearchQuestions(ctx context.Context, cond ContentConditions) ([]Item, error) {
	where := []string{"q.is_active = TRUE"}
	var args []interface{}
	argIdx := 1

	if len(cond.Categories) > 0 {
		where = append(where, fmt.Sprintf("q.category = ANY($%d)", argIdx))
		args = append(args, cond.Categories)
		argIdx++
	}
	if len(cond.Difficulties) > 0 {
		where = append(where, fmt.Sprintf("q.difficulty = ANY($%d)", argIdx))
		args = append(args, cond.Difficulties)
		argIdx++
	}
	if len(cond.Tags) > 0 {
		where = append(where, fmt.Sprintf("q.tags && $%d", argIdx))
		args = append(args, cond.Tags)
		argIdx++
	}
	if cond.Branch != "" {
		where = append(where, fmt.Sprintf("q.branch = $%d", argIdx))
		args = append(args, cond.Branch)
		argIdx++
	}
	if cond.DateFrom != nil {
		where = append(where, fmt.Sprintf("q.created_at >= $%d", argIdx))
		args = append(args, *cond.DateFrom)
		argIdx++
	}
	if cond.DateTo != nil {
		where = append(where, fmt.Sprintf("q.created_at <= $%d", argIdx))
		args = append(args, *cond.DateTo)
		argIdx++
	}
	if cond.HasExplanation != nil {
		if *cond.HasExplanation {
			where = append(where, "q.explanation IS NOT NULL AND q.explanation <> ''")
		} else {
			where = append(where, "(q.explanation IS NULL OR q.explanation = '')")
		}
	}
	if cond.MinSeconds != nil {
		where = append(where, fmt.Sprintf("q.estimated_seconds >= $%d", argIdx))
		args = append(args, *cond.MinSeconds)
		argIdx++
	}
	if cond.MaxSeconds != nil {
		where = append(where, fmt.Sprintf("q.estimated_seconds <= $%d", argIdx))
		args = append(args, *cond.MaxSeconds)
		argIdx++
	}
	if cond.BookmarkedIDs != nil {
		where = append(where, fmt.Sprintf("q.id = ANY($%d)", argIdx))
		args = append(args, cond.BookmarkedIDs)
		argIdx++
	}
	if clause, ok := textClause([]string{"q.content", "q.explanation"}, cond.Terms, &args, &argIdx); ok {
		where = append(where, clause)
	}

	query := fmt.Sprintf(`
		SELECT q.id, q.content, COALESCE(q.explanation, ''), q.category, q.difficulty,
		       q.tags, q.branch, q.estimated_seconds, q.created_at, q.updated_at,
		       COALESCE(pa.attempts, 0)
		FROM questions q%s
		WHERE %s
		ORDER BY q.created_at DESC
		LIMIT $%d`, questionPopularityJoin, strings.Join(where, " AND "), argIdx)
	args = append(args, cond.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanQuestionItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search questions: %w", err)
	}
	return items, nil
}

func scanQuestionItem(row pgx.Row) (Item, error) {
	var (
		it          Item
		explanation string
		category    string
		difficulty  string
	)
	err := row.Scan(&it.ID, &it.Title, &explanation, &category, &difficulty,
		&it.Tags, &it.Branch, &it.EstimatedSeconds, &it.CreatedAt, &it.UpdatedAt,
		&it.Popularity)
	if err != nil {
		return Item{}, fmt.Errorf("scan question item: %w", err)
	}
	it.Type = TypeQuestion
	it.Content = explanation
	it.Category = &category
	it.Difficulty = &difficulty
	it.HasExplanation = explanation != ""
	return it, nil
}

// SearchFlashcards retrieves active flashcards matching the conditions.
// Flashcards carry no branch, so a branch filter does not constrain them.
func (r *Repo) SearchFlashcards(ctx context.Context, cond ContentConditions) ([]Item, error) {
	where := []string{"is_active = TRUE"}
	var args []interface{}
	argIdx := 1

	if len(cond.Categories) > 0 {
		where = append(where, fmt.Sprintf("category = ANY($%d)", argIdx))
		args = append(args, cond.Categories)
		argIdx++
	}
	if len(cond.Difficulties) > 0 {
		where = append(where, fmt.Sprintf("difficulty = ANY($%d)", argIdx))
		args = append(args, cond.Difficulties)
		argIdx++
	}
	if len(cond.Tags) > 0 {
		where = append(where, fmt.Sprintf("tags && $%d", argIdx))
		args = append(args, cond.Tags)
		argIdx++
	}
	if cond.DateFrom != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *cond.DateFrom)
		argIdx++
	}
	if cond.DateTo != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *cond.DateTo)
		argIdx++
	}
	if cond.MinSeconds != nil {
		where = append(where, fmt.Sprintf("estimated_seconds >= $%d", argIdx))
		args = append(args, *cond.MinSeconds)
		argIdx++
	}
	if cond.MaxSeconds != nil {
		where = append(where, fmt.Sprintf("estimated_seconds <= $%d", argIdx))
		args = append(args, *cond.MaxSeconds)
		argIdx++
	}
	if cond.BookmarkedIDs != nil {
		where = append(where, fmt.Sprintf("id = ANY($%d)", argIdx))
		args = append(args, cond.BookmarkedIDs)
		argIdx++
	}
	if clause, ok := textClause([]string{"front", "back"}, cond.Terms, &args, &argIdx); ok {
		where = append(where, clause)
	}

	query := fmt.Sprintf(`
		SELECT id, front, back, category, difficulty, tags, estimated_seconds,
		       review_count, created_at, updated_at
		FROM flashcards
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(where, " AND "), argIdx)
	args = append(args, cond.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search flashcards: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanFlashcardItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search flashcards: %w", err)
	}
	return items, nil
}

func scanFlashcardItem(row pgx.Row) (Item, error) {
	var (
		it         Item
		category   string
		difficulty string
	)
	err := row.Scan(&it.ID, &it.Title, &it.Content, &category, &difficulty,
		&it.Tags, &it.EstimatedSeconds, &it.Popularity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Item{}, fmt.Errorf("scan flashcard item: %w", err)
	}
	it.Type = TypeFlashcard
	it.Category = &category
	it.Difficulty = &difficulty
	return it, nil
}

// SearchMilitaryJobs retrieves active military jobs matching the conditions.
// A job with no AFQT requirement counts as requiring zero for the score
// window.
func (r *Repo) SearchMilitaryJobs(ctx context.Context, cond ContentConditions) ([]Item, error) {
	where := []string{"is_active = TRUE"}
	var args []interface{}
	argIdx := 1

	if len(cond.Categories) > 0 {
		where = append(where, fmt.Sprintf("category = ANY($%d)", argIdx))
		args = append(args, cond.Categories)
		argIdx++
	}
	if cond.Branch != "" {
		where = append(where, fmt.Sprintf("branch = $%d", argIdx))
		args = append(args, cond.Branch)
		argIdx++
	}
	if cond.DateFrom != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *cond.DateFrom)
		argIdx++
	}
	if cond.DateTo != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *cond.DateTo)
		argIdx++
	}
	if cond.MinAFQTScore != nil {
		where = append(where, fmt.Sprintf("COALESCE(min_afqt_score, 0) >= $%d", argIdx))
		args = append(args, *cond.MinAFQTScore)
		argIdx++
	}
	if cond.MaxAFQTScore != nil {
		where = append(where, fmt.Sprintf("COALESCE(min_afqt_score, 0) <= $%d", argIdx))
		args = append(args, *cond.MaxAFQTScore)
		argIdx++
	}
	if cond.BookmarkedIDs != nil {
		where = append(where, fmt.Sprintf("id = ANY($%d)", argIdx))
		args = append(args, cond.BookmarkedIDs)
		argIdx++
	}
	if clause, ok := textClause([]string{"title", "description", "code"}, cond.Terms, &args, &argIdx); ok {
		where = append(where, clause)
	}

	query := fmt.Sprintf(`
		SELECT id, title, code, description, category, branch, created_at, updated_at
		FROM military_jobs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(where, " AND "), argIdx)
	args = append(args, cond.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search military jobs: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanJobItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search military jobs: %w", err)
	}
	return items, nil
}

func scanJobItem(row pgx.Row) (Item, error) {
	var (
		it          Item
		code        string
		description string
		branch      string
	)
	err := row.Scan(&it.ID, &it.Title, &code, &description, &it.Category,
		&branch, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Item{}, fmt.Errorf("scan military job item: %w", err)
	}
	it.Type = TypeMilitaryJob
	it.Content = strings.TrimSpace(code + " " + description)
	it.Branch = &branch
	it.Tags = []string{}
	return it, nil
}

// SearchStudyGroups retrieves active study groups matching the conditions.
func (r *Repo) SearchStudyGroups(ctx context.Context, cond ContentConditions) ([]Item, error) {
	where := []string{"is_active = TRUE"}
	var args []interface{}
	argIdx := 1

	if len(cond.Categories) > 0 {
		where = append(where, fmt.Sprintf("category = ANY($%d)", argIdx))
		args = append(args, cond.Categories)
		argIdx++
	}
	if cond.Branch != "" {
		where = append(where, fmt.Sprintf("branch = $%d", argIdx))
		args = append(args, cond.Branch)
		argIdx++
	}
	if cond.DateFrom != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argIdx))
		args = append(args, *cond.DateFrom)
		argIdx++
	}
	if cond.DateTo != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argIdx))
		args = append(args, *cond.DateTo)
		argIdx++
	}
	if cond.BookmarkedIDs != nil {
		where = append(where, fmt.Sprintf("id = ANY($%d)", argIdx))
		args = append(args, cond.BookmarkedIDs)
		argIdx++
	}
	if clause, ok := textClause([]string{"name", "description"}, cond.Terms, &args, &argIdx); ok {
		where = append(where, clause)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, category, branch, member_count, created_at, updated_at
		FROM study_groups
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`, strings.Join(where, " AND "), argIdx)
	args = append(args, cond.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search study groups: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		it, err := scanGroupItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search study groups: %w", err)
	}
	return items, nil
}

func scanGroupItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Title, &it.Content, &it.Category, &it.Branch,
		&it.Popularity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return Item{}, fmt.Errorf("scan study group item: %w", err)
	}
	it.Type = TypeStudyGroup
	it.Tags = []string{}
	return it, nil
}

// FindItem loads one active item by type-scoped id.
func (r *Repo) FindItem(ctx context.Context, contentType string, id uuid.UUID) (Item, bool, error) {
	var (
		query string
		scan  func(pgx.Row) (Item, error)
	)
	switch contentType {
	case TypeQuestion:
		query = fmt.Sprintf(`
			SELECT q.id, q.content, COALESCE(q.explanation, ''), q.category, q.difficulty,
			       q.tags, q.branch, q.estimated_seconds, q.created_at, q.updated_at,
			       COALESCE(pa.attempts, 0)
			FROM questions q%s
			WHERE q.id = $1 AND q.is_active = TRUE`, questionPopularityJoin)
		scan = scanQuestionItem
	case TypeFlashcard:
		query = `
			SELECT id, front, back, category, difficulty, tags, estimated_seconds,
			       review_count, created_at, updated_at
			FROM flashcards
			WHERE id = $1 AND is_active = TRUE`
		scan = scanFlashcardItem
	case TypeMilitaryJob:
		query = `
			SELECT id, title, code, description, category, branch, created_at, updated_at
			FROM military_jobs
			WHERE id = $1 AND is_active = TRUE`
		scan = scanJobItem
	case TypeStudyGroup:
		query = `
			SELECT id, name, description, category, branch, member_count, created_at, updated_at
			FROM study_groups
			WHERE id = $1 AND is_active = TRUE`
		scan = scanGroupItem
	default:
		return Item{}, false, fmt.Errorf("find item: unknown content type %q", contentType)
	}

	it, err := scan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, false, nil
		}
		return Item{}, false, fmt.Errorf("find %s item: %w", contentType, err)
	}
	return it, true, nil
}
