package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MilitaryJob is a row from the military_jobs table. RequiredLineScores maps
// a composite line-score name (e.g. "GT") to its minimum value.
type MilitaryJob struct {
	ID                 uuid.UUID
	Title              string
	Code               string
	Branch             string
	Description        string
	Category           *string
	MinAFQTScore       *int
	RequiredLineScores map[string]int
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// CreateJobParams contains the fields for inserting a military job.
type CreateJobParams struct {
	Title              string
	Code               string
	Branch             string
	Description        string
	Category           *string
	MinAFQTScore       *int
	RequiredLineScores map[string]int
}

// UpdateJobParams contains optional fields for a partial update.
// Nil fields keep their current value.
type UpdateJobParams struct {
	ID                 uuid.UUID
	Title              *string
	Code               *string
	Branch             *string
	Description        *string
	Category           *string
	MinAFQTScore       *int
	RequiredLineScores map[string]int
}

// ListJobsParams contains filters and pagination for listing jobs.
// AFQTScore, when set, keeps only jobs the given score qualifies for
// (no minimum, or minimum at or below the score).
type ListJobsParams struct {
	Branch          string
	Category        string
	Search          string
	AFQTScore       *int
	IncludeInactive bool
	Limit           int
	Offset          int
}

// BranchCount is the number of active jobs in one branch.
type BranchCount struct {
	Branch   string
	JobCount int
}

// Repository defines the persistence operations for military jobs.
type Repository interface {
	Create(ctx context.Context, params CreateJobParams) (MilitaryJob, error)
	Update(ctx context.Context, params UpdateJobParams) (MilitaryJob, error)
	GetByID(ctx context.Context, id uuid.UUID) (MilitaryJob, error)
	List(ctx context.Context, params ListJobsParams) ([]MilitaryJob, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListBranches(ctx context.Context) ([]BranchCount, error)
}
