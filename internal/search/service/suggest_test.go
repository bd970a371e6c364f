package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestSuggestionsShortPartialReturnsEmpty(t *testing.T) {
	repo := &fakeRepo{recentQueries: []string{"algebra"}}
	svc, _ := newTestService(repo)

	got := svc.Suggestions(context.Background(), "a")
	if len(got) != 0 {
		t.Errorf("suggestions = %v, want empty for a one-character partial", got)
	}
	if repo.lastPartial != "" {
		t.Error("history consulted for a partial below the minimum length")
	}
}

func TestSuggestionsDedupeAcrossSources(t *testing.T) {
	repo := &fakeRepo{recentQueries: []string{
		"Arithmetic drills",
		"arithmetic DRILLS",
		"arithmetic reasoning practice",
	}}
	svc, _ := newTestService(repo)

	got := svc.Suggestions(context.Background(), "arithmetic")
	want := []string{"Arithmetic drills", "arithmetic reasoning practice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want %v with case-insensitive duplicates collapsed", got, want)
	}
}

func TestSuggestionsCappedAtEight(t *testing.T) {
	repo := &fakeRepo{recentQueries: []string{
		"recent one", "recent two", "recent three", "recent four", "recent five",
	}}
	svc, _ := newTestService(repo)

	got := svc.Suggestions(context.Background(), "re")
	want := []string{
		"recent one", "recent two", "recent three", "recent four", "recent five",
		"arithmetic reasoning practice",
		"paragraph comprehension tips",
		"mathematics knowledge review",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want history first then static phrases, capped at 8", got)
	}
}

func TestSuggestionsHistoryFailureFallsBackToStatic(t *testing.T) {
	repo := &fakeRepo{recentErr: errors.New("history unavailable")}
	svc, _ := newTestService(repo)

	got := svc.Suggestions(context.Background(), "knowledge")
	want := []string{"word knowledge drills", "mathematics knowledge review"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want static phrases despite the history failure", got)
	}
}

func TestSuggestionsIdempotent(t *testing.T) {
	repo := &fakeRepo{recentQueries: []string{"navy pay chart"}}
	svc, _ := newTestService(repo)
	ctx := context.Background()

	first := svc.Suggestions(ctx, "navy")
	second := svc.Suggestions(ctx, "navy")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated call differs: %v then %v", first, second)
	}
}

func TestSuggestionsServedFromCache(t *testing.T) {
	repo := &fakeRepo{recentQueries: []string{"navy pay chart"}}
	svc, _ := newTestServiceWithCache(repo, newMiniredisCache(t))
	ctx := context.Background()

	first := svc.Suggestions(ctx, "navy")
	if len(first) != 1 || first[0] != "navy pay chart" {
		t.Fatalf("suggestions = %v, want the history entry", first)
	}

	// A changed history must not show through while the cache entry lives.
	repo.recentQueries = []string{"navy boot camp"}
	second := svc.Suggestions(ctx, "navy")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("second call = %v, want cached %v", second, first)
	}
}
