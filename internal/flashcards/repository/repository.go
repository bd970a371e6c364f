package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/platform/apperr"
)

const flashcardNotFoundMessage = "flashcard not found"

const flashcardColumns = `id, front, back, category, difficulty, tags,
		estimated_seconds, review_count, is_active, created_at, updated_at`

// Repo implements the flashcards repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new flashcards repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanFlashcard(row pgx.Row) (Flashcard, error) {
	var f Flashcard
	err := row.Scan(
		&f.ID, &f.Front, &f.Back, &f.Category, &f.Difficulty, &f.Tags,
		&f.EstimatedSeconds, &f.ReviewCount, &f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	)
	return f, err
}

// Create inserts a flashcard.
func (r *Repo) Create(ctx context.Context, params CreateFlashcardParams) (Flashcard, error) {
	query := fmt.Sprintf(`
		INSERT INTO flashcards (front, back, category, difficulty, tags, estimated_seconds)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, flashcardColumns)

	f, err := scanFlashcard(r.pool.QueryRow(ctx, query,
		params.Front, params.Back, params.Category, params.Difficulty,
		params.Tags, params.EstimatedSeconds,
	))
	if err != nil {
		return Flashcard{}, fmt.Errorf("create flashcard: %w", err)
	}
	return f, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateFlashcardParams) (Flashcard, error) {
	query := fmt.Sprintf(`
		UPDATE flashcards
		SET front = COALESCE($2, front),
			back = COALESCE($3, back),
			category = COALESCE($4, category),
			difficulty = COALESCE($5, difficulty),
			tags = COALESCE($6, tags),
			estimated_seconds = COALESCE($7, estimated_seconds),
			updated_at = now()
		WHERE id = $1 AND is_active = TRUE
		RETURNING %s`, flashcardColumns)

	f, err := scanFlashcard(r.pool.QueryRow(ctx, query,
		params.ID, params.Front, params.Back, params.Category,
		params.Difficulty, params.Tags, params.EstimatedSeconds,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Flashcard{}, apperr.NotFound(flashcardNotFoundMessage)
		}
		return Flashcard{}, fmt.Errorf("update flashcard: %w", err)
	}
	return f, nil
}

// GetByID retrieves a flashcard by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Flashcard, error) {
	query := fmt.Sprintf(`SELECT %s FROM flashcards WHERE id = $1`, flashcardColumns)

	f, err := scanFlashcard(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Flashcard{}, apperr.NotFound(flashcardNotFoundMessage)
		}
		return Flashcard{}, fmt.Errorf("get flashcard by id: %w", err)
	}
	return f, nil
}

// List retrieves flashcards with filters and pagination.
func (r *Repo) List(ctx context.Context, params ListFlashcardsParams) ([]Flashcard, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if !params.IncludeInactive {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}
	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}
	if params.Difficulty != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("difficulty = $%d", argIdx))
		args = append(args, params.Difficulty)
		argIdx++
	}
	if params.Tag != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("$%d = ANY(tags)", argIdx))
		args = append(args, params.Tag)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(front ILIKE $%d OR back ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM flashcards WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count flashcards: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM flashcards
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, flashcardColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list flashcards: %w", err)
	}
	defer rows.Close()

	items := make([]Flashcard, 0)
	for rows.Next() {
		f, err := scanFlashcard(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan flashcard: %w", err)
		}
		items = append(items, f)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate flashcards: %w", rows.Err())
	}

	return items, total, nil
}

// SetActive toggles the soft-delete flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE flashcards SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set flashcard active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(flashcardNotFoundMessage)
	}
	return nil
}

// IncrementReviewCount bumps the review counter of an active flashcard.
func (r *Repo) IncrementReviewCount(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE flashcards SET review_count = review_count + 1 WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("increment flashcard review count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(flashcardNotFoundMessage)
	}
	return nil
}
