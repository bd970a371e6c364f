package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/flashcards/repository"
	"asvab_prep_backend/internal/flashcards/transport"
	"asvab_prep_backend/platform/apperr"
)

type fakeRepo struct {
	cards    map[uuid.UUID]repository.Flashcard
	lastList repository.ListFlashcardsParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{cards: make(map[uuid.UUID]repository.Flashcard)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateFlashcardParams) (repository.Flashcard, error) {
	card := repository.Flashcard{
		ID:         uuid.New(),
		Front:      params.Front,
		Back:       params.Back,
		Category:   params.Category,
		Difficulty: params.Difficulty,
		Tags:       params.Tags,
		IsActive:   true,
	}
	f.cards[card.ID] = card
	return card, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateFlashcardParams) (repository.Flashcard, error) {
	card, ok := f.cards[params.ID]
	if !ok || !card.IsActive {
		return repository.Flashcard{}, apperr.NotFound("flashcard not found")
	}
	if params.Front != nil {
		card.Front = *params.Front
	}
	if params.Back != nil {
		card.Back = *params.Back
	}
	f.cards[params.ID] = card
	return card, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Flashcard, error) {
	card, ok := f.cards[id]
	if !ok {
		return repository.Flashcard{}, apperr.NotFound("flashcard not found")
	}
	return card, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListFlashcardsParams) ([]repository.Flashcard, int, error) {
	f.lastList = params
	items := make([]repository.Flashcard, 0)
	for _, card := range f.cards {
		if card.IsActive {
			items = append(items, card)
		}
	}
	return items, len(items), nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	card, ok := f.cards[id]
	if !ok {
		return apperr.NotFound("flashcard not found")
	}
	card.IsActive = active
	f.cards[id] = card
	return nil
}

func (f *fakeRepo) IncrementReviewCount(_ context.Context, id uuid.UUID) error {
	card, ok := f.cards[id]
	if !ok || !card.IsActive {
		return apperr.NotFound("flashcard not found")
	}
	card.ReviewCount++
	f.cards[id] = card
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func mustCreate(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	resp, err := svc.Create(context.Background(), transport.CreateFlashcardRequest{
		Front:      "What does AFQT stand for?",
		Back:       "Armed Forces Qualification Test",
		Category:   "WORD_KNOWLEDGE",
		Difficulty: "EASY",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return uuid.MustParse(resp.ID)
}

func TestReviewIncrementsCount(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	ctx := context.Background()

	id := mustCreate(t, svc)

	for i := 0; i < 3; i++ {
		if err := svc.Review(ctx, id); err != nil {
			t.Fatalf("Review: %v", err)
		}
	}

	resp, err := svc.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resp.ReviewCount != 3 {
		t.Errorf("reviewCount = %d, want 3", resp.ReviewCount)
	}
}

func TestReviewOfDeletedCardFails(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	ctx := context.Background()

	id := mustCreate(t, svc)
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := svc.Review(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	if _, err := svc.GetByID(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("GetByID err = %v, want not found", err)
	}
}

func TestListClampsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	if _, err := svc.List(context.Background(), transport.ListFlashcardsQuery{Page: -3, Limit: 0}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastList.Limit != defaultPageSize {
		t.Errorf("limit = %d, want %d", repo.lastList.Limit, defaultPageSize)
	}
	if repo.lastList.Offset != 0 {
		t.Errorf("offset = %d, want 0", repo.lastList.Offset)
	}
}
