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

const questionNotFoundMessage = "question not found"

const questionColumns = `id, content, explanation, options, correct_index, category, difficulty,
		tags, branch, estimated_seconds, figure_key, is_active, created_at, updated_at`

// Repo implements the questions repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new questions repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanQuestion(row pgx.Row) (Question, error) {
	var q Question
	err := row.Scan(
		&q.ID, &q.Content, &q.Explanation, &q.Options, &q.CorrectIndex, &q.Category,
		&q.Difficulty, &q.Tags, &q.Branch, &q.EstimatedSeconds, &q.FigureKey,
		&q.IsActive, &q.CreatedAt, &q.UpdatedAt,
	)
	return q, err
}

// Create inserts a question.
func (r *Repo) Create(ctx context.Context, params CreateQuestionParams) (Question, error) {
	query := fmt.Sprintf(`
		INSERT INTO questions (content, explanation, options, correct_index, category, difficulty, tags, branch, estimated_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, questionColumns)

	q, err := scanQuestion(r.pool.QueryRow(ctx, query,
		params.Content, params.Explanation, params.Options, params.CorrectIndex,
		params.Category, params.Difficulty, params.Tags, params.Branch, params.EstimatedSeconds,
	))
	if err != nil {
		return Question{}, fmt.Errorf("create question: %w", err)
	}
	return q, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateQuestionParams) (Question, error) {
	query := fmt.Sprintf(`
		UPDATE questions
		SET content = COALESCE($2, content),
			explanation = COALESCE($3, explanation),
			options = COALESCE($4, options),
			correct_index = COALESCE($5, correct_index),
			category = COALESCE($6, category),
			difficulty = COALESCE($7, difficulty),
			tags = COALESCE($8, tags),
			branch = COALESCE($9, branch),
			estimated_seconds = COALESCE($10, estimated_seconds),
			updated_at = now()
		WHERE id = $1 AND is_active = TRUE
		RETURNING %s`, questionColumns)

	q, err := scanQuestion(r.pool.QueryRow(ctx, query,
		params.ID, params.Content, params.Explanation, params.Options, params.CorrectIndex,
		params.Category, params.Difficulty, params.Tags, params.Branch, params.EstimatedSeconds,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, apperr.NotFound(questionNotFoundMessage)
		}
		return Question{}, fmt.Errorf("update question: %w", err)
	}
	return q, nil
}

// GetByID retrieves a question by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionColumns)

	q, err := scanQuestion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Question{}, apperr.NotFound(questionNotFoundMessage)
		}
		return Question{}, fmt.Errorf("get question by id: %w", err)
	}
	return q, nil
}

// List retrieves questions with filters and pagination.
func (r *Repo) List(ctx context.Context, params ListQuestionsParams) ([]Question, int, error) {
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
	if params.Branch != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("branch = $%d", argIdx))
		args = append(args, params.Branch)
		argIdx++
	}
	if params.Tag != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("$%d = ANY(tags)", argIdx))
		args = append(args, params.Tag)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(content ILIKE $%d OR explanation ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM questions WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM questions
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, questionColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	items := make([]Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		items = append(items, q)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate questions: %w", rows.Err())
	}

	return items, total, nil
}

// SetActive toggles the soft-delete flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE questions SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set question active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(questionNotFoundMessage)
	}
	return nil
}

// SetFigureKey stores (or clears) the storage key of the question's figure.
func (r *Repo) SetFigureKey(ctx context.Context, id uuid.UUID, figureKey *string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE questions SET figure_key = $2, updated_at = now() WHERE id = $1`, id, figureKey)
	if err != nil {
		return fmt.Errorf("set question figure key: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(questionNotFoundMessage)
	}
	return nil
}
