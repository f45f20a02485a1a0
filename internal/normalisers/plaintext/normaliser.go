// Package plaintext provides a Normaliser for plain text and Markdown files.
//
// Plain text is passed through unchanged. Markdown has its markup stripped
// and takes its title from the first level-one heading.
package plaintext

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

const markdownMIME = "text/markdown"

// Normaliser handles plain text and Markdown documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/plain", markdownMIME, "text/x-markdown", "text/csv"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5 // Fallback normaliser
}

// Normalise decodes the file as UTF-8 text. Invalid sequences are replaced.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawFile) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text := strings.ToValidUTF8(string(raw.Content), string(utf8.RuneError))
	text = strings.ReplaceAll(text, "\r\n", "\n")

	format := "txt"
	title := ""
	if raw.MIMEType == markdownMIME || raw.MIMEType == "text/x-markdown" {
		format = "markdown"
		title = markdownTitle(text)
		text = stripMarkdown(text)
	}
	if title == "" {
		title = titleFromName(raw.Name)
	}

	doc := domain.NewLocalFileDocument(
		uuid.New().String(),
		raw.Path,
		raw.Name,
		format,
		title,
		strings.TrimSpace(text),
	)
	return &doc, nil
}

// titleFromName turns "account_opening-faq.txt" into "account opening faq".
func titleFromName(name string) string {
	filename := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(filename)
}

// markdownTitle returns the text of the first "# " heading.
func markdownTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

var (
	mdFence      = regexp.MustCompile("(?m)^[ \\t]*```.*$")
	mdInlineCode = regexp.MustCompile("`([^`]+)`")
	mdImage      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading    = regexp.MustCompile(`(?m)^#{1,6}[ \t]+`)
	mdEmphasis   = regexp.MustCompile(`(\*\*|__|\*)([^*_\n]+)(\*\*|__|\*)`)
	mdQuote      = regexp.MustCompile(`(?m)^> ?`)
	mdRule       = regexp.MustCompile(`(?m)^[ \t]*[-*_]{3,}[ \t]*$`)
	mdBullet     = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	mdNumbered   = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+`)
	mdBlankRun   = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markup, keeping the readable text of code
// blocks, links and emphasis.
func stripMarkdown(content string) string {
	content = mdFence.ReplaceAllString(content, "")
	content = mdInlineCode.ReplaceAllString(content, "$1")
	content = mdImage.ReplaceAllString(content, "")
	content = mdLink.ReplaceAllString(content, "$1")
	content = mdRule.ReplaceAllString(content, "")
	content = mdHeading.ReplaceAllString(content, "")
	content = mdEmphasis.ReplaceAllString(content, "$2")
	content = mdQuote.ReplaceAllString(content, "")
	content = mdBullet.ReplaceAllString(content, "")
	content = mdNumbered.ReplaceAllString(content, "")
	content = mdBlankRun.ReplaceAllString(content, "\n\n")
	return content
}
