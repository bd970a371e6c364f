package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"asvab_prep_backend/platform/apperr"
)

const jobNotFoundMessage = "military job not found"

const jobColumns = `id, title, code, branch, description, category,
		min_afqt_score, required_line_scores, is_active, created_at, updated_at`

// Repo implements the military jobs repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new military jobs repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanJob(row pgx.Row) (MilitaryJob, error) {
	var j MilitaryJob
	err := row.Scan(
		&j.ID, &j.Title, &j.Code, &j.Branch, &j.Description, &j.Category,
		&j.MinAFQTScore, &j.RequiredLineScores, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

// Create inserts a military job. Branch and code are unique together.
func (r *Repo) Create(ctx context.Context, params CreateJobParams) (MilitaryJob, error) {
	lineScores := params.RequiredLineScores
	if lineScores == nil {
		lineScores = map[string]int{}
	}

	query := fmt.Sprintf(`
		INSERT INTO military_jobs (title, code, branch, description, category, min_afqt_score, required_line_scores)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, jobColumns)

	j, err := scanJob(r.pool.QueryRow(ctx, query,
		params.Title, params.Code, params.Branch, params.Description,
		params.Category, params.MinAFQTScore, lineScores,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return MilitaryJob{}, apperr.Conflict("a job with this code already exists for this branch")
		}
		return MilitaryJob{}, fmt.Errorf("create military job: %w", err)
	}
	return j, nil
}

// Update applies a partial update; nil fields keep their current value.
func (r *Repo) Update(ctx context.Context, params UpdateJobParams) (MilitaryJob, error) {
	query := fmt.Sprintf(`
		UPDATE military_jobs
		SET title = COALESCE($2, title),
			code = COALESCE($3, code),
			branch = COALESCE($4, branch),
			description = COALESCE($5, description),
			category = COALESCE($6, category),
			min_afqt_score = COALESCE($7, min_afqt_score),
			required_line_scores = COALESCE($8, required_line_scores),
			updated_at = now()
		WHERE id = $1 AND is_active = TRUE
		RETURNING %s`, jobColumns)

	var lineScores interface{}
	if params.RequiredLineScores != nil {
		lineScores = params.RequiredLineScores
	}

	j, err := scanJob(r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Code, params.Branch,
		params.Description, params.Category, params.MinAFQTScore, lineScores,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MilitaryJob{}, apperr.NotFound(jobNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return MilitaryJob{}, apperr.Conflict("a job with this code already exists for this branch")
		}
		return MilitaryJob{}, fmt.Errorf("update military job: %w", err)
	}
	return j, nil
}

// GetByID retrieves a military job by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (MilitaryJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM military_jobs WHERE id = $1`, jobColumns)

	j, err := scanJob(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MilitaryJob{}, apperr.NotFound(jobNotFoundMessage)
		}
		return MilitaryJob{}, fmt.Errorf("get military job by id: %w", err)
	}
	return j, nil
}

// List retrieves military jobs with filters and pagination.
func (r *Repo) List(ctx context.Context, params ListJobsParams) ([]MilitaryJob, int, error) {
	whereClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	if !params.IncludeInactive {
		whereClauses = append(whereClauses, "is_active = TRUE")
	}
	if params.Branch != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("branch = $%d", argIdx))
		args = append(args, params.Branch)
		argIdx++
	}
	if params.Category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, params.Category)
		argIdx++
	}
	if params.AFQTScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("(min_afqt_score IS NULL OR min_afqt_score <= $%d)", argIdx))
		args = append(args, *params.AFQTScore)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR code ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM military_jobs WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count military jobs: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM military_jobs
		WHERE %s
		ORDER BY branch, code
		LIMIT $%d OFFSET $%d`, jobColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list military jobs: %w", err)
	}
	defer rows.Close()

	items := make([]MilitaryJob, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan military job: %w", err)
		}
		items = append(items, j)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate military jobs: %w", rows.Err())
	}

	return items, total, nil
}

// SetActive toggles the soft-delete flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE military_jobs SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set military job active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMessage)
	}
	return nil
}

// ListBranches returns the active job count per branch.
func (r *Repo) ListBranches(ctx context.Context) ([]BranchCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT branch, COUNT(*)
		FROM military_jobs
		WHERE is_active = TRUE
		GROUP BY branch
		ORDER BY branch`)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()

	branches := make([]BranchCount, 0)
	for rows.Next() {
		var b BranchCount
		if err := rows.Scan(&b.Branch, &b.JobCount); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate branches: %w", rows.Err())
	}

	return branches, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
