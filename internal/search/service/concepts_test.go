package service

import (
	"reflect"
	"testing"
)

func TestExtractConcepts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"military vocabulary", "Air Force enlisted ASVAB prep", []string{"air force", "enlisted", "asvab"}},
		{"multi-word phrase", "word knowledge practice", []string{"word knowledge"}},
		{"vocabulary across lists", "algebra for the navy", []string{"algebra", "navy"}},
		{"fallback to tokens", "zebra xy habitat", []string{"zebra", "habitat"}},
		{"short tokens dropped", "an ox", nil},
		{"blank query", "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractConcepts(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractConcepts(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTokenizeLowersAndSplits(t *testing.T) {
	got := tokenize("Algebra   DRILLS ")
	want := []string{"algebra", "drills"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize = %v, want %v", got, want)
	}
}

func TestSearchTermsDedupes(t *testing.T) {
	got := searchTerms([]string{"algebra", "math"}, []string{"algebra", "geometry"})
	want := []string{"algebra", "math", "geometry"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("searchTerms = %v, want %v", got, want)
	}
}

func TestSearchTermsEmptyInputs(t *testing.T) {
	if got := searchTerms(nil, nil); len(got) != 0 {
		t.Errorf("searchTerms(nil, nil) = %v, want empty", got)
	}
}
