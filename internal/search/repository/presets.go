package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"asvab_prep_backend/platform/apperr"
)

var _ PresetsRepository = (*Repo)(nil)

const presetColumns = `id, user_id, name, filters, created_at`

// CreatePreset stores a named filter document for the user. Names are unique
// per user.
func (r *Repo) CreatePreset(ctx context.Context, userID uuid.UUID, name string, filters []byte) (Preset, error) {
	var p Preset
	err := r.pool.QueryRow(ctx, `
		INSERT INTO search_filter_presets (user_id, name, filters)
		VALUES ($1, $2, $3)
		RETURNING `+presetColumns,
		userID, name, filters).Scan(&p.ID, &p.UserID, &p.Name, &p.Filters, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Preset{}, apperr.Conflict("a preset with this name already exists")
		}
		return Preset{}, fmt.Errorf("create filter preset: %w", err)
	}
	return p, nil
}

// ListPresets returns the user's presets, newest first.
func (r *Repo) ListPresets(ctx context.Context, userID uuid.UUID) ([]Preset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+presetColumns+`
		FROM search_filter_presets
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list filter presets: %w", err)
	}
	defer rows.Close()

	presets := make([]Preset, 0)
	for rows.Next() {
		var p Preset
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Filters, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan filter preset: %w", err)
		}
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list filter presets: %w", err)
	}
	return presets, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}
