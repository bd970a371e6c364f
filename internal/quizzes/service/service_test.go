package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/quizzes/repository"
	"asvab_prep_backend/internal/quizzes/transport"
	"asvab_prep_backend/platform/apperr"
)

type fakeRepo struct {
	attempts []repository.QuizAttempt
}

func (f *fakeRepo) CreateAttempt(_ context.Context, params repository.CreateAttemptParams) (repository.QuizAttempt, error) {
	score := 0
	for _, q := range params.Questions {
		if q.IsCorrect {
			score++
		}
	}
	attempt := repository.QuizAttempt{
		ID:             uuid.New(),
		UserID:         params.UserID,
		Category:       params.Category,
		Difficulty:     params.Difficulty,
		Score:          score,
		TotalQuestions: len(params.Questions),
		CompletedAt:    time.Now(),
	}
	f.attempts = append(f.attempts, attempt)
	return attempt, nil
}

func (f *fakeRepo) ListAttempts(_ context.Context, userID uuid.UUID, limit, offset int) ([]repository.QuizAttempt, int, error) {
	items := make([]repository.QuizAttempt, 0)
	for _, a := range f.attempts {
		if a.UserID == userID {
			items = append(items, a)
		}
	}
	return items, len(items), nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func TestRecordAttemptDerivesScore(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)

	resp, err := svc.RecordAttempt(context.Background(), uuid.New(), transport.CreateAttemptRequest{
		Category:   "ARITHMETIC_REASONING",
		Difficulty: "MEDIUM",
		Questions: []transport.QuestionResultRequest{
			{QuestionID: uuid.NewString(), IsCorrect: true, TimeSpentSeconds: 20},
			{QuestionID: uuid.NewString(), IsCorrect: false, TimeSpentSeconds: 45},
			{QuestionID: uuid.NewString(), IsCorrect: true, TimeSpentSeconds: 31},
		},
	})
	if err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	if resp.Score != 2 {
		t.Errorf("score = %d, want 2", resp.Score)
	}
	if resp.TotalQuestions != 3 {
		t.Errorf("totalQuestions = %d, want 3", resp.TotalQuestions)
	}
}

func TestRecordAttemptRejectsMalformedQuestionID(t *testing.T) {
	svc := New(&fakeRepo{})

	_, err := svc.RecordAttempt(context.Background(), uuid.New(), transport.CreateAttemptRequest{
		Category:   "ARITHMETIC_REASONING",
		Difficulty: "MEDIUM",
		Questions: []transport.QuestionResultRequest{
			{QuestionID: "not-a-uuid", IsCorrect: true},
		},
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestListAttemptsScopedToCaller(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo)
	ctx := context.Background()

	alice := uuid.New()
	bob := uuid.New()

	for _, userID := range []uuid.UUID{alice, alice, bob} {
		if _, err := svc.RecordAttempt(ctx, userID, transport.CreateAttemptRequest{
			Category:   "WORD_KNOWLEDGE",
			Difficulty: "EASY",
			Questions: []transport.QuestionResultRequest{
				{QuestionID: uuid.NewString(), IsCorrect: true},
			},
		}); err != nil {
			t.Fatalf("RecordAttempt: %v", err)
		}
	}

	resp, err := svc.ListAttempts(ctx, alice, transport.ListAttemptsQuery{})
	if err != nil {
		t.Fatalf("ListAttempts: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", resp.TotalCount)
	}
}
