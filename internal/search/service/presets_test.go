package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"asvab_prep_backend/internal/search/repository"
	"asvab_prep_backend/internal/search/transport"
	"asvab_prep_backend/platform/apperr"
)

func TestPresetRoundTrip(t *testing.T) {
	hasExplanation := true
	filters := transport.SearchFilters{
		Categories:     []string{"MATH", "SCIENCE"},
		Difficulties:   []string{"EASY"},
		ContentType:    "QUESTIONS",
		HasExplanation: &hasExplanation,
	}
	repo := &fakeRepo{}
	svc, _ := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreatePreset(ctx, userID, transport.CreatePresetRequest{Name: "easy math", Filters: filters})
	if err != nil {
		t.Fatalf("CreatePreset: %v", err)
	}
	if created.Name != "easy math" {
		t.Errorf("name = %q", created.Name)
	}
	if !reflect.DeepEqual(created.Filters, filters) {
		t.Errorf("created filters = %+v, want structurally equal to the input", created.Filters)
	}

	list := svc.ListPresets(ctx, userID)
	if len(list.Items) != 1 {
		t.Fatalf("listed %d presets, want 1", len(list.Items))
	}
	if !reflect.DeepEqual(list.Items[0].Filters, filters) {
		t.Errorf("listed filters = %+v, want the saved document back unchanged", list.Items[0].Filters)
	}
}

func TestListPresetsSkipsCorruptRows(t *testing.T) {
	repo := &fakeRepo{presetRows: []repository.Preset{
		{ID: uuid.New(), Name: "good", Filters: []byte(`{"categories":["MATH"]}`), CreatedAt: time.Now()},
		{ID: uuid.New(), Name: "corrupt", Filters: []byte("{boom"), CreatedAt: time.Now()},
	}}
	svc, _ := newTestService(repo)

	list := svc.ListPresets(context.Background(), uuid.New())
	if len(list.Items) != 1 || list.Items[0].Name != "good" {
		t.Errorf("items = %+v, want only the readable preset", list.Items)
	}
}

func TestListPresetsDegradesOnReadFailure(t *testing.T) {
	repo := &fakeRepo{listPresetsErr: apperr.Internal("read failed")}
	svc, _ := newTestService(repo)

	list := svc.ListPresets(context.Background(), uuid.New())
	if list.Items == nil || len(list.Items) != 0 {
		t.Errorf("items = %v, want empty slice on failure", list.Items)
	}
}

func TestCreatePresetPropagatesConflict(t *testing.T) {
	repo := &fakeRepo{createPresetErr: apperr.Conflict("a preset with this name already exists")}
	svc, _ := newTestService(repo)

	_, err := svc.CreatePreset(context.Background(), uuid.New(), transport.CreatePresetRequest{
		Name:    "easy math",
		Filters: transport.SearchFilters{Categories: []string{"MATH"}},
	})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("err = %v, want conflict", err)
	}
}
