package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

func TestCompose(t *testing.T) {
	long := strings.Repeat("x", 300)

	tests := []struct {
		name       string
		results    []domain.SearchResult
		maxPerItem int
		maxItems   int
		want       string
	}{
		{
			name: "empty results",
			want: "",
		},
		{
			name:       "joins with a single space",
			results:    []domain.SearchResult{{Text: "first"}, {Text: "second"}},
			maxPerItem: 250,
			maxItems:   3,
			want:       "first second",
		},
		{
			name:       "truncates long text with marker",
			results:    []domain.SearchResult{{Text: long}},
			maxPerItem: 250,
			maxItems:   3,
			want:       strings.Repeat("x", 250) + "...",
		},
		{
			name:       "text at the limit is untouched",
			results:    []domain.SearchResult{{Text: strings.Repeat("y", 250)}},
			maxPerItem: 250,
			maxItems:   3,
			want:       strings.Repeat("y", 250),
		},
		{
			name:       "keeps only the first items",
			results:    []domain.SearchResult{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}},
			maxPerItem: 250,
			maxItems:   3,
			want:       "a b c",
		},
		{
			name:    "zero limits use defaults",
			results: []domain.SearchResult{{Text: long}, {Text: "b"}, {Text: "c"}, {Text: "d"}},
			want:    strings.Repeat("x", 250) + "... b c",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compose(tc.results, tc.maxPerItem, tc.maxItems))
		})
	}
}

func TestCompose_CountsCharacters(t *testing.T) {
	got := Compose([]domain.SearchResult{{Text: "ééééé"}}, 3, 1)
	assert.Equal(t, "ééé...", got)
}
