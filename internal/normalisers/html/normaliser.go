package html

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles saved HTML files in the data directory. It applies
// the same extraction as crawled pages but never follows links.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the main content of an HTML file.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawFile) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	page, err := Extract(raw.Content, nil)
	if err != nil {
		return nil, err
	}

	title := page.Title
	if title == "" {
		title = strings.TrimSuffix(raw.Name, filepath.Ext(raw.Name))
	}

	doc := domain.NewLocalFileDocument(uuid.New().String(), raw.Path, raw.Name, "html", title, page.Text)
	return &doc, nil
}
