package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
)

func TestEnrichResultsAttachesBookmarksAndAccuracy(t *testing.T) {
	question := newItem(repository.TypeQuestion, "Algebra drill", "Solve for x.")
	card := newItem(repository.TypeFlashcard, "Geometry card", "Angles.")
	lastAttempt := time.Now().Add(-time.Hour)
	repo := &fakeRepo{
		bookmarkRefs: []repository.BookmarkRef{
			{ContentType: repository.TypeQuestion, ContentID: question.ID},
		},
		questionStats: []repository.QuestionStats{
			{QuestionID: question.ID, Attempts: 4, Correct: 3, TimeSpentSeconds: 120, LastAttempted: lastAttempt},
		},
	}
	svc, _ := newTestService(repo)

	results := []*resultItem{{item: question}, {item: card}}
	svc.enrichResults(context.Background(), uuid.New(), results)

	got := results[0].interaction
	if got == nil {
		t.Fatal("question left unenriched")
	}
	if !got.IsBookmarked {
		t.Error("isBookmarked = false, want true")
	}
	if got.Accuracy == nil || !approx(*got.Accuracy, 0.75) {
		t.Errorf("accuracy = %v, want 3/4", got.Accuracy)
	}
	if got.TimeSpentSeconds == nil || *got.TimeSpentSeconds != 120 {
		t.Errorf("timeSpentSeconds = %v, want 120", got.TimeSpentSeconds)
	}
	if got.LastAttempted == nil || !got.LastAttempted.Equal(lastAttempt) {
		t.Errorf("lastAttempted = %v, want %v", got.LastAttempted, lastAttempt)
	}

	cardInteraction := results[1].interaction
	if cardInteraction == nil {
		t.Fatal("flashcard left unenriched")
	}
	if cardInteraction.IsBookmarked || cardInteraction.Accuracy != nil {
		t.Errorf("flashcard interaction = %+v, want no bookmark and no accuracy", cardInteraction)
	}
}

func TestEnrichResultsZeroAttemptsOmitAccuracy(t *testing.T) {
	question := newItem(repository.TypeQuestion, "Algebra drill", "Solve for x.")
	repo := &fakeRepo{
		questionStats: []repository.QuestionStats{
			{QuestionID: question.ID, Attempts: 0, LastAttempted: time.Now()},
		},
	}
	svc, _ := newTestService(repo)

	results := []*resultItem{{item: question}}
	svc.enrichResults(context.Background(), uuid.New(), results)

	if results[0].interaction == nil {
		t.Fatal("question left unenriched")
	}
	if results[0].interaction.Accuracy != nil {
		t.Errorf("accuracy = %v, want absent with zero attempts", *results[0].interaction.Accuracy)
	}
}

func TestEnrichResultsDegradesOnBookmarkFailure(t *testing.T) {
	repo := &fakeRepo{bookmarksErr: errors.New("bookmarks unavailable")}
	svc, _ := newTestService(repo)

	results := []*resultItem{{item: newItem(repository.TypeQuestion, "Algebra drill", "")}}
	svc.enrichResults(context.Background(), uuid.New(), results)

	if results[0].interaction != nil {
		t.Errorf("interaction = %+v, want results left untouched on failure", results[0].interaction)
	}
}

func TestEnrichResultsDegradesOnStatsFailure(t *testing.T) {
	repo := &fakeRepo{questionStatsErr: errors.New("stats unavailable")}
	svc, _ := newTestService(repo)

	results := []*resultItem{{item: newItem(repository.TypeQuestion, "Algebra drill", "")}}
	svc.enrichResults(context.Background(), uuid.New(), results)

	if results[0].interaction != nil {
		t.Errorf("interaction = %+v, want results left untouched on failure", results[0].interaction)
	}
}

func TestEnrichResultsSkipsAnonymousCaller(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)

	results := []*resultItem{{item: newItem(repository.TypeQuestion, "Algebra drill", "")}}
	svc.enrichResults(context.Background(), uuid.Nil, results)

	if repo.bookmarksCalled {
		t.Error("bookmark read issued for an anonymous caller")
	}
	if results[0].interaction != nil {
		t.Error("anonymous results must stay unenriched")
	}
}
