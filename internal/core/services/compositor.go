package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// truncationMarker is appended to any text cut short.
const truncationMarker = "..."

// Compose builds the context string handed to the answer cascade from the
// first maxItems results, each cut to maxPerItem characters, joined by a space.
// Non-positive limits fall back to the defaults.
func Compose(results []domain.SearchResult, maxPerItem, maxItems int) string {
	if maxPerItem <= 0 {
		maxPerItem = domain.DefaultContextItemChars
	}
	if maxItems <= 0 {
		maxItems = domain.DefaultContextItems
	}
	if len(results) > maxItems {
		results = results[:maxItems]
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, truncate(r.Text, maxPerItem))
	}
	return strings.Join(parts, " ")
}

// truncate cuts s to limit characters and appends the marker if anything was dropped.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + truncationMarker
}
