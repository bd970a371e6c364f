package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StudyGroup is a row from the study_groups table. MemberCount is
// denormalized and maintained transactionally with membership changes.
type StudyGroup struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    *string
	Branch      *string
	OwnerID     uuid.UUID
	MemberCount int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateGroupParams contains the fields for creating a study group.
type CreateGroupParams struct {
	Name        string
	Description string
	Category    *string
	Branch      *string
	OwnerID     uuid.UUID
}

// ListGroupsParams contains filters and pagination for listing groups.
type ListGroupsParams struct {
	Category        string
	Branch          string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// Repository defines the persistence operations for study groups.
type Repository interface {
	// Create inserts a group and enrolls the owner as its first member in
	// one transaction.
	Create(ctx context.Context, params CreateGroupParams) (StudyGroup, error)
	GetByID(ctx context.Context, id uuid.UUID) (StudyGroup, error)
	List(ctx context.Context, params ListGroupsParams) ([]StudyGroup, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// AddMember enrolls a user and bumps member_count in one transaction.
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	// RemoveMember withdraws a user and drops member_count in one transaction.
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}
