// Package list renders the passages an answer was composed from.
package list

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/sercha-assist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// previewChars is the passage preview length.
const previewChars = 150

// SourceList formats answer sources as "[n] source (relevance)" lines
// followed by a preview of the passage.
type SourceList struct {
	styles *styles.Styles
	width  int
}

// NewSourceList creates a source list renderer.
func NewSourceList(s *styles.Styles) *SourceList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &SourceList{styles: s, width: 80}
}

// SetWidth sets the wrap width for previews.
func (l *SourceList) SetWidth(width int) {
	l.width = width
}

// Render returns the formatted list, or an empty string for no sources.
func (l *SourceList) Render(sources []domain.AnswerSource) string {
	if len(sources) == 0 {
		return ""
	}

	lines := make([]string, 0, len(sources)*2)
	for i, src := range sources {
		head := fmt.Sprintf("  [%d] %s (relevance %.2f)", i+1, src.Source, Relevance(src.Score))
		lines = append(lines, l.styles.Source.Render(head))
		lines = append(lines, l.styles.Muted.Render("      "+Preview(src.Text, l.previewLimit())))
	}
	return strings.Join(lines, "\n")
}

func (l *SourceList) previewLimit() int {
	limit := l.width - 10
	if limit > previewChars {
		limit = previewChars
	}
	if limit < 20 {
		limit = 20
	}
	return limit
}

// Relevance converts a raw distance into the displayed relevance.
func Relevance(distance float64) float64 {
	return 1 - distance
}

// Preview collapses whitespace and cuts text to max runes with "...".
func Preview(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max-3]) + "..."
}
