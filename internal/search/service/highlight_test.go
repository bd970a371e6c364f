package service

import (
	"strings"
	"testing"

	"asvab_prep_backend/internal/search/repository"
)

func TestMarkTermsWrapsEveryOccurrence(t *testing.T) {
	got := markTerms("Math and more math", []string{"math"})
	want := "<mark>Math</mark> and more <mark>math</mark>"
	if got != want {
		t.Errorf("markTerms = %q, want %q", got, want)
	}
}

func TestMarkTermsPrefersLongestTerm(t *testing.T) {
	got := markTerms("algebraic logic", []string{"algebra", "algebraic"})
	want := "<mark>algebraic</mark> logic"
	if got != want {
		t.Errorf("markTerms = %q, want the longest term wrapped once", got)
	}
}

func TestMarkTermsNoOccurrences(t *testing.T) {
	text := "nothing to see"
	if got := markTerms(text, []string{"math"}); got != text {
		t.Errorf("markTerms = %q, want original text untouched", got)
	}
}

func TestHighlightFieldClipsLongText(t *testing.T) {
	text := strings.Repeat("filler ", 100) + "algebra appears here" + strings.Repeat(" filler", 100)

	got, ok := highlightField(text, []string{"algebra"})
	if !ok {
		t.Fatal("highlightField found no match")
	}
	if !strings.Contains(got, "<mark>algebra</mark>") {
		t.Errorf("excerpt %q missing marked term", got)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("excerpt %q should carry ellipses on both clipped ends", got)
	}
	if len(got) >= len(text) {
		t.Errorf("excerpt length %d not clipped below original %d", len(got), len(text))
	}
}

func TestHighlightFieldShortTextStaysWhole(t *testing.T) {
	got, ok := highlightField("Basic math problem", []string{"math"})
	if !ok {
		t.Fatal("highlightField found no match")
	}
	if got != "Basic <mark>math</mark> problem" {
		t.Errorf("excerpt = %q", got)
	}
}

func TestHighlightFieldNoMatch(t *testing.T) {
	if _, ok := highlightField("History fact", []string{"math"}); ok {
		t.Error("highlightField reported a match where none exists")
	}
}

func TestBuildHighlightsTitleBeforeContent(t *testing.T) {
	item := newItem(repository.TypeQuestion, "Algebra basics", "More algebra practice below.")

	got := buildHighlights(item, []string{"algebra"})
	if len(got) != 2 {
		t.Fatalf("highlights = %v, want one per matching field", got)
	}
	if !strings.Contains(got[0], "<mark>Algebra</mark> basics") {
		t.Errorf("first highlight = %q, want the title excerpt", got[0])
	}
	if !strings.Contains(got[1], "<mark>algebra</mark>") {
		t.Errorf("second highlight = %q, want the content excerpt", got[1])
	}
}
