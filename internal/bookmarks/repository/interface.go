package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Bookmark is a row from the bookmarks table. ContentID is scoped by
// ContentType, so the pair identifies the bookmarked item.
type Bookmark struct {
	UserID      uuid.UUID
	ContentType string
	ContentID   uuid.UUID
	CreatedAt   time.Time
}

// ListBookmarksParams contains filters and pagination for listing bookmarks.
type ListBookmarksParams struct {
	UserID      uuid.UUID
	ContentType string
	Limit       int
	Offset      int
}

// Repository defines the persistence operations for bookmarks.
type Repository interface {
	// Toggle flips the bookmark and reports the new state: true when the
	// item is now bookmarked.
	Toggle(ctx context.Context, userID uuid.UUID, contentType string, contentID uuid.UUID) (bool, error)
	List(ctx context.Context, params ListBookmarksParams) ([]Bookmark, int, error)
}
