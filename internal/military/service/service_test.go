package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/military/repository"
	"asvab_prep_backend/internal/military/transport"
	"asvab_prep_backend/platform/apperr"
)

type fakeRepo struct {
	jobs     map[uuid.UUID]repository.MilitaryJob
	lastList repository.ListJobsParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{jobs: make(map[uuid.UUID]repository.MilitaryJob)}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateJobParams) (repository.MilitaryJob, error) {
	j := repository.MilitaryJob{
		ID:                 uuid.New(),
		Title:              params.Title,
		Code:               params.Code,
		Branch:             params.Branch,
		Description:        params.Description,
		Category:           params.Category,
		MinAFQTScore:       params.MinAFQTScore,
		RequiredLineScores: params.RequiredLineScores,
		IsActive:           true,
	}
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateJobParams) (repository.MilitaryJob, error) {
	j, ok := f.jobs[params.ID]
	if !ok || !j.IsActive {
		return repository.MilitaryJob{}, apperr.NotFound("military job not found")
	}
	if params.Title != nil {
		j.Title = *params.Title
	}
	f.jobs[params.ID] = j
	return j, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.MilitaryJob, error) {
	j, ok := f.jobs[id]
	if !ok {
		return repository.MilitaryJob{}, apperr.NotFound("military job not found")
	}
	return j, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListJobsParams) ([]repository.MilitaryJob, int, error) {
	f.lastList = params
	items := make([]repository.MilitaryJob, 0)
	for _, j := range f.jobs {
		if !j.IsActive {
			continue
		}
		if params.AFQTScore != nil && j.MinAFQTScore != nil && *j.MinAFQTScore > *params.AFQTScore {
			continue
		}
		items = append(items, j)
	}
	return items, len(items), nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	j, ok := f.jobs[id]
	if !ok {
		return apperr.NotFound("military job not found")
	}
	j.IsActive = active
	f.jobs[id] = j
	return nil
}

func (f *fakeRepo) ListBranches(_ context.Context) ([]repository.BranchCount, error) {
	counts := make(map[string]int)
	for _, j := range f.jobs {
		if j.IsActive {
			counts[j.Branch]++
		}
	}
	branches := make([]repository.BranchCount, 0, len(counts))
	for branch, n := range counts {
		branches = append(branches, repository.BranchCount{Branch: branch, JobCount: n})
	}
	return branches, nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func intPtr(v int) *int { return &v }

func TestListFiltersByAFQTEligibility(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, transport.CreateJobRequest{
		Title: "Cryptologic Technician", Code: "CTN", Branch: "NAVY", MinAFQTScore: intPtr(65),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, transport.CreateJobRequest{
		Title: "Infantryman", Code: "11B", Branch: "ARMY", MinAFQTScore: intPtr(31),
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, transport.CreateJobRequest{
		Title: "Culinary Specialist", Code: "92G", Branch: "ARMY",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	resp, err := svc.List(ctx, transport.ListJobsQuery{AFQTScore: intPtr(40)})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if resp.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2 (jobs with no minimum or minimum <= 40)", resp.TotalCount)
	}
	for _, j := range resp.Items {
		if j.MinAFQTScore != nil && *j.MinAFQTScore > 40 {
			t.Errorf("job %s requires AFQT %d, should have been filtered", j.Code, *j.MinAFQTScore)
		}
	}
}

func TestResponseNormalizesNilLineScores(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)

	resp, err := svc.Create(context.Background(), transport.CreateJobRequest{
		Title: "Infantryman", Code: "11B", Branch: "ARMY",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.RequiredLineScores == nil {
		t.Error("requiredLineScores = nil, want empty map")
	}
}

func TestListBranchCounts(t *testing.T) {
	repo := newFakeRepo()
	svc := New(repo)
	ctx := context.Background()

	for _, job := range []transport.CreateJobRequest{
		{Title: "Infantryman", Code: "11B", Branch: "ARMY"},
		{Title: "Combat Medic", Code: "68W", Branch: "ARMY"},
		{Title: "Cryptologic Technician", Code: "CTN", Branch: "NAVY"},
	} {
		if _, err := svc.Create(ctx, job); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	branches, err := svc.ListBranches(ctx)
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}

	counts := make(map[string]int)
	for _, b := range branches {
		counts[b.Branch] = b.JobCount
	}
	if counts["ARMY"] != 2 || counts["NAVY"] != 1 {
		t.Errorf("branch counts = %v, want ARMY:2 NAVY:1", counts)
	}
}
