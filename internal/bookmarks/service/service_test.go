package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/bookmarks/repository"
	"asvab_prep_backend/internal/bookmarks/transport"
	"asvab_prep_backend/platform/apperr"
)

type bookmarkKey struct {
	userID      uuid.UUID
	contentType string
	contentID   uuid.UUID
}

type fakeRepo struct {
	saved map[bookmarkKey]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{saved: make(map[bookmarkKey]bool)}
}

func (f *fakeRepo) Toggle(_ context.Context, userID uuid.UUID, contentType string, contentID uuid.UUID) (bool, error) {
	key := bookmarkKey{userID, contentType, contentID}
	if f.saved[key] {
		delete(f.saved, key)
		return false, nil
	}
	f.saved[key] = true
	return true, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListBookmarksParams) ([]repository.Bookmark, int, error) {
	items := make([]repository.Bookmark, 0)
	for key := range f.saved {
		if key.userID != params.UserID {
			continue
		}
		if params.ContentType != "" && key.contentType != params.ContentType {
			continue
		}
		items = append(items, repository.Bookmark{
			UserID:      key.userID,
			ContentType: key.contentType,
			ContentID:   key.contentID,
		})
	}
	return items, len(items), nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func TestToggleFlipsState(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	userID := uuid.New()

	req := transport.ToggleBookmarkRequest{
		ContentType: "QUESTION",
		ContentID:   uuid.NewString(),
	}

	resp, err := svc.Toggle(ctx, userID, req)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !resp.Bookmarked {
		t.Error("first toggle should bookmark the item")
	}

	resp, err = svc.Toggle(ctx, userID, req)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if resp.Bookmarked {
		t.Error("second toggle should remove the bookmark")
	}
}

func TestToggleRejectsMalformedContentID(t *testing.T) {
	svc := New(newFakeRepo())

	_, err := svc.Toggle(context.Background(), uuid.New(), transport.ToggleBookmarkRequest{
		ContentType: "QUESTION",
		ContentID:   "not-a-uuid",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestListFiltersByContentType(t *testing.T) {
	svc := New(newFakeRepo())
	ctx := context.Background()
	userID := uuid.New()

	for _, contentType := range []string{"QUESTION", "QUESTION", "FLASHCARD"} {
		if _, err := svc.Toggle(ctx, userID, transport.ToggleBookmarkRequest{
			ContentType: contentType,
			ContentID:   uuid.NewString(),
		}); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}

	resp, err := svc.List(ctx, userID, transport.ListBookmarksQuery{ContentType: "QUESTION"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", resp.TotalCount)
	}
	for _, b := range resp.Items {
		if b.ContentType != "QUESTION" {
			t.Errorf("contentType = %s, want QUESTION", b.ContentType)
		}
	}
}
