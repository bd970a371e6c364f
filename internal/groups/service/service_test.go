package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/groups/repository"
	"asvab_prep_backend/internal/groups/transport"
	"asvab_prep_backend/platform/apperr"
)

type memberKey struct {
	groupID uuid.UUID
	userID  uuid.UUID
}

type fakeRepo struct {
	groups  map[uuid.UUID]repository.StudyGroup
	members map[memberKey]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		groups:  make(map[uuid.UUID]repository.StudyGroup),
		members: make(map[memberKey]bool),
	}
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateGroupParams) (repository.StudyGroup, error) {
	g := repository.StudyGroup{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Category:    params.Category,
		Branch:      params.Branch,
		OwnerID:     params.OwnerID,
		MemberCount: 1,
		IsActive:    true,
	}
	f.groups[g.ID] = g
	f.members[memberKey{g.ID, params.OwnerID}] = true
	return g, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.StudyGroup, error) {
	g, ok := f.groups[id]
	if !ok {
		return repository.StudyGroup{}, apperr.NotFound("study group not found")
	}
	return g, nil
}

func (f *fakeRepo) List(_ context.Context, params repository.ListGroupsParams) ([]repository.StudyGroup, int, error) {
	items := make([]repository.StudyGroup, 0)
	for _, g := range f.groups {
		if g.IsActive {
			items = append(items, g)
		}
	}
	return items, len(items), nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	g, ok := f.groups[id]
	if !ok {
		return apperr.NotFound("study group not found")
	}
	g.IsActive = active
	f.groups[id] = g
	return nil
}

func (f *fakeRepo) AddMember(_ context.Context, groupID, userID uuid.UUID) error {
	g, ok := f.groups[groupID]
	if !ok || !g.IsActive {
		return apperr.NotFound("study group not found")
	}
	key := memberKey{groupID, userID}
	if f.members[key] {
		return apperr.Conflict("already a member of this group")
	}
	f.members[key] = true
	g.MemberCount++
	f.groups[groupID] = g
	return nil
}

func (f *fakeRepo) RemoveMember(_ context.Context, groupID, userID uuid.UUID) error {
	g, ok := f.groups[groupID]
	if !ok {
		return apperr.NotFound("study group not found")
	}
	key := memberKey{groupID, userID}
	if !f.members[key] {
		return apperr.NotFound("not a member of this group")
	}
	delete(f.members, key)
	if g.MemberCount > 0 {
		g.MemberCount--
	}
	f.groups[groupID] = g
	return nil
}

func (f *fakeRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	return f.members[memberKey{groupID, userID}], nil
}

var _ repository.Repository = (*fakeRepo)(nil)

type testAppConfig struct{}

func (testAppConfig) GetAppBaseURL() string { return "https://app.example.com" }

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return New(repo, testAppConfig{}), repo
}

func TestCreateEnrollsOwner(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	resp, err := svc.Create(context.Background(), owner, transport.CreateGroupRequest{
		Name: "Math Warriors",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.MemberCount != 1 {
		t.Errorf("memberCount = %d, want 1", resp.MemberCount)
	}
	if !resp.IsMember {
		t.Error("owner should be a member of their new group")
	}
}

func TestCreateStripsHTMLFromNameAndDescription(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.Create(context.Background(), uuid.New(), transport.CreateGroupRequest{
		Name:        "<b>Algebra</b> crew",
		Description: "We meet <script>alert(1)</script> weekly",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Name != "Algebra crew" {
		t.Errorf("name = %q, want %q", resp.Name, "Algebra crew")
	}
	if resp.Description != "We meet alert(1) weekly" {
		t.Errorf("description = %q, want %q", resp.Description, "We meet alert(1) weekly")
	}
}

func TestCreateRejectsMarkupOnlyName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), uuid.New(), transport.CreateGroupRequest{
		Name: "<div></div>",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestJoinAndLeaveAdjustMemberCount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	owner := uuid.New()
	joiner := uuid.New()

	created, err := svc.Create(ctx, owner, transport.CreateGroupRequest{Name: "Math Warriors"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	groupID := uuid.MustParse(created.ID)

	if err := svc.Join(ctx, groupID, joiner); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err := svc.Join(ctx, groupID, joiner); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("second join err = %v, want conflict", err)
	}

	resp, err := svc.GetByID(ctx, groupID, &joiner)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resp.MemberCount != 2 {
		t.Errorf("memberCount after join = %d, want 2", resp.MemberCount)
	}
	if !resp.IsMember {
		t.Error("joiner should be reported as a member")
	}

	if err := svc.Leave(ctx, groupID, joiner); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if err := svc.Leave(ctx, groupID, joiner); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("second leave err = %v, want not found", err)
	}

	resp, err = svc.GetByID(ctx, groupID, &joiner)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resp.MemberCount != 1 {
		t.Errorf("memberCount after leave = %d, want 1", resp.MemberCount)
	}
	if resp.IsMember {
		t.Error("joiner should no longer be a member")
	}
}

func TestInviteQRRendersPNG(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), transport.CreateGroupRequest{Name: "Math Warriors"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	png, err := svc.InviteQR(ctx, uuid.MustParse(created.ID))
	if err != nil {
		t.Fatalf("InviteQR: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("invite QR is not a PNG image")
	}
}

func TestInviteQRForUnknownGroup(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.InviteQR(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
