package driven

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// RawFile is a local file's bytes before text extraction.
type RawFile struct {
	// Path is the full path the file was read from.
	Path string

	// Name is the base filename.
	Name string

	// MIMEType is the content type derived from the extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// Normaliser extracts text from one family of file formats.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers return 50-89, fallbacks 1-9.
	Priority() int

	// Normalise extracts a local file document from raw bytes.
	Normalise(ctx context.Context, raw *RawFile) (*domain.Document, error)
}

// NormaliserRegistry selects the appropriate normaliser for a file.
type NormaliserRegistry interface {
	// Normalise transforms a file using the best matching normaliser.
	// Returns domain.ErrUnsupportedType when none matches.
	Normalise(ctx context.Context, raw *RawFile) (*domain.Document, error)

	// Register adds a normaliser to the registry.
	Register(normaliser Normaliser)

	// SupportedMIMETypes returns all MIME types that can be normalised.
	SupportedMIMETypes() []string
}
