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

const groupNotFoundMessage = "study group not found"

const groupColumns = `id, name, description, category, branch, owner_id,
		member_count, is_active, created_at, updated_at`

// Repo implements the study groups repository backed by Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new study groups repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func scanGroup(row pgx.Row) (StudyGroup, error) {
	var g StudyGroup
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &g.Category, &g.Branch, &g.OwnerID,
		&g.MemberCount, &g.IsActive, &g.CreatedAt, &g.UpdatedAt,
	)
	return g, err
}

// Create inserts a group and enrolls the owner as its first member in one
// transaction.
func (r *Repo) Create(ctx context.Context, params CreateGroupParams) (StudyGroup, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return StudyGroup{}, fmt.Errorf("begin create group: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := fmt.Sprintf(`
		INSERT INTO study_groups (name, description, category, branch, owner_id, member_count)
		VALUES ($1, $2, $3, $4, $5, 1)
		RETURNING %s`, groupColumns)

	g, err := scanGroup(tx.QueryRow(ctx, query,
		params.Name, params.Description, params.Category, params.Branch, params.OwnerID,
	))
	if err != nil {
		return StudyGroup{}, fmt.Errorf("create group: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO study_group_members (group_id, user_id)
		VALUES ($1, $2)`, g.ID, params.OwnerID); err != nil {
		return StudyGroup{}, fmt.Errorf("enroll group owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return StudyGroup{}, fmt.Errorf("commit create group: %w", err)
	}
	return g, nil
}

// GetByID retrieves a study group by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (StudyGroup, error) {
	query := fmt.Sprintf(`SELECT %s FROM study_groups WHERE id = $1`, groupColumns)

	g, err := scanGroup(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StudyGroup{}, apperr.NotFound(groupNotFoundMessage)
		}
		return StudyGroup{}, fmt.Errorf("get group by id: %w", err)
	}
	return g, nil
}

// List retrieves study groups with filters and pagination, most popular first.
func (r *Repo) List(ctx context.Context, params ListGroupsParams) ([]StudyGroup, int, error) {
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
	if params.Branch != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("branch = $%d", argIdx))
		args = append(args, params.Branch)
		argIdx++
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	whereClause := "TRUE"
	if len(whereClauses) > 0 {
		whereClause = strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM study_groups WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count groups: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM study_groups
		WHERE %s
		ORDER BY member_count DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, groupColumns, whereClause, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	items := make([]StudyGroup, 0)
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan group: %w", err)
		}
		items = append(items, g)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate groups: %w", rows.Err())
	}

	return items, total, nil
}

// SetActive toggles the soft-delete flag.
func (r *Repo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE study_groups SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set group active: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(groupNotFoundMessage)
	}
	return nil
}

// AddMember enrolls a user. The member_count update runs first so concurrent
// joins serialize on the group row.
func (r *Repo) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin add member: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE study_groups SET member_count = member_count + 1, updated_at = now()
		WHERE id = $1 AND is_active = TRUE`, groupID)
	if err != nil {
		return fmt.Errorf("bump member count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(groupNotFoundMessage)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO study_group_members (group_id, user_id)
		VALUES ($1, $2)`, groupID, userID); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("already a member of this group")
		}
		return fmt.Errorf("add member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit add member: %w", err)
	}
	return nil
}

// RemoveMember withdraws a user and drops member_count in one transaction.
func (r *Repo) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove member: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, `
		UPDATE study_groups SET member_count = GREATEST(member_count - 1, 0), updated_at = now()
		WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("drop member count: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(groupNotFoundMessage)
	}

	result, err = tx.Exec(ctx, `
		DELETE FROM study_group_members
		WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("not a member of this group")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit remove member: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the group.
func (r *Repo) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM study_group_members WHERE group_id = $1 AND user_id = $2
		)`, groupID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
