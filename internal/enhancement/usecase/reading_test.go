package usecase

import (
	"strings"
	"testing"
)

func TestReadingMetrics(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantMinutes    int
		wantComplexity string
	}{
		{"empty", "", 1, "easy"},
		{"short simple", "The cat sat. The dog ran.", 1, "easy"},
		{"no punctuation counts as one sentence",
			strings.Repeat("word ", 30), 1, "hard"},
		{"four hundred words", strings.Repeat("one two three four. ", 100), 2, "easy"},
		{"two hundred and one words", strings.Repeat("a. ", 200) + "b.", 2, "easy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minutes, complexity := ReadingMetrics(tt.content)
			if minutes != tt.wantMinutes {
				t.Errorf("minutes = %d, want %d", minutes, tt.wantMinutes)
			}
			if complexity != tt.wantComplexity {
				t.Errorf("complexity = %q, want %q", complexity, tt.wantComplexity)
			}
		})
	}
}
