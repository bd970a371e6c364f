package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/questions/repository"
	"asvab_prep_backend/internal/questions/transport"
	"asvab_prep_backend/platform/apperr"
	"asvab_prep_backend/platform/logger"
)

type fakeRepo struct {
	questions map[uuid.UUID]repository.Question
	lastList  repository.ListQuestionsParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{questions: make(map[uuid.UUID]repository.Question)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateQuestionParams) (repository.Question, error) {
	q := repository.Question{
		ID:           uuid.New(),
		Content:      params.Content,
		Explanation:  params.Explanation,
		Options:      params.Options,
		CorrectIndex: params.CorrectIndex,
		Category:     params.Category,
		Difficulty:   params.Difficulty,
		Tags:         params.Tags,
		IsActive:     true,
	}
	f.questions[q.ID] = q
	return q, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateQuestionParams) (repository.Question, error) {
	q, ok := f.questions[params.ID]
	if !ok || !q.IsActive {
		return repository.Question{}, apperr.NotFound("question not found")
	}
	if params.Options != nil {
		q.Options = params.Options
	}
	if params.CorrectIndex != nil {
		q.CorrectIndex = *params.CorrectIndex
	}
	if params.Content != nil {
		q.Content = *params.Content
	}
	f.questions[params.ID] = q
	return q, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return repository.Question{}, apperr.NotFound("question not found")
	}
	return q, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListQuestionsParams) ([]repository.Question, int, error) {
	f.lastList = params
	items := make([]repository.Question, 0)
	for _, q := range f.questions {
		if q.IsActive {
			items = append(items, q)
		}
	}
	return items, len(items), nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	q, ok := f.questions[id]
	if !ok {
		return apperr.NotFound("question not found")
	}
	q.IsActive = active
	f.questions[id] = q
	return nil
}

func (f *fakeRepo) SetFigureKey(_ context.Context, id uuid.UUID, figureKey *string) error {
	q, ok := f.questions[id]
	if !ok {
		return apperr.NotFound("question not found")
	}
	q.FigureKey = figureKey
	f.questions[id] = q
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, nil, "question-figures", logger.New("development")), repo
}

func TestCreateRejectsOutOfRangeAnswer(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), transport.CreateQuestionRequest{
		Content:      "What is 2 + 2?",
		Options:      []string{"3", "4"},
		CorrectIndex: 2,
		Category:     "ARITHMETIC_REASONING",
		Difficulty:   "EASY",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestUpdateValidatesAnswerAgainstStoredOptions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, transport.CreateQuestionRequest{
		Content:      "What is 2 + 2?",
		Options:      []string{"3", "4"},
		CorrectIndex: 1,
		Category:     "ARITHMETIC_REASONING",
		Difficulty:   "EASY",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)

	// New index beyond the stored two options must be rejected.
	badIndex := 2
	_, err = svc.Update(ctx, id, transport.UpdateQuestionRequest{CorrectIndex: &badIndex})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}

	// Growing the options makes the same index valid.
	_, err = svc.Update(ctx, id, transport.UpdateQuestionRequest{
		Options:      []string{"3", "4", "5"},
		CorrectIndex: &badIndex,
	})
	if err != nil {
		t.Errorf("Update with grown options: %v", err)
	}
}

func TestGetByIDHidesInactiveQuestions(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, transport.CreateQuestionRequest{
		Content:      "What is 2 + 2?",
		Options:      []string{"3", "4"},
		CorrectIndex: 1,
		Category:     "ARITHMETIC_REASONING",
		Difficulty:   "EASY",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)

	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.questions[id]; !ok {
		t.Fatal("soft delete removed the row")
	}

	if _, err := svc.GetByID(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestListClampsPagination(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.List(context.Background(), transport.ListQuestionsQuery{Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastList.Limit != maxPageSize {
		t.Errorf("limit = %d, want %d", repo.lastList.Limit, maxPageSize)
	}
	if repo.lastList.Offset != 0 {
		t.Errorf("offset = %d, want 0", repo.lastList.Offset)
	}
}

func TestFigureURLsRequireStorage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GenerateFigureUploadURL(context.Background(), uuid.New(), transport.FigureUploadRequest{
		FileName:    "diagram.png",
		ContentType: "image/png",
		SizeBytes:   1024,
	})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Errorf("err = %v, want internal error when storage is not configured", err)
	}
}
