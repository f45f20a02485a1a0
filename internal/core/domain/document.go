package domain

import "fmt"

// DocumentKind distinguishes where a document's text came from.
type DocumentKind string

// Available document kinds.
const (
	// KindLocalFile is a document read from the data directory.
	KindLocalFile DocumentKind = "local_file"

	// KindWebpage is a document extracted from a crawled HTML page.
	KindWebpage DocumentKind = "webpage"
)

// IsValid returns true if the kind is recognised.
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindLocalFile, KindWebpage:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k DocumentKind) String() string {
	return string(k)
}

// LocalFileOrigin holds the fields specific to local file documents.
type LocalFileOrigin struct {
	// Path is the full path the file was read from.
	Path string

	// Name is the base filename. It is the document's source identifier.
	Name string

	// Format is the reader that produced the text (pdf, docx, text).
	Format string
}

// WebpageOrigin holds the fields specific to crawled webpages.
type WebpageOrigin struct {
	// URL is the page address. It is the document's source identifier.
	URL string
}

// Document is a unit of source text, immutable once created.
// Exactly one of LocalFile or Webpage is set, matching Kind.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Kind tags which origin variant is populated.
	Kind DocumentKind

	// Text is the full extracted text before chunking.
	Text string

	// Title is the human-readable title. May be empty.
	Title string

	// LocalFile is set when Kind is KindLocalFile.
	LocalFile *LocalFileOrigin

	// Webpage is set when Kind is KindWebpage.
	Webpage *WebpageOrigin
}

// NewLocalFileDocument creates a document for a file read from disk.
func NewLocalFileDocument(id, path, name, format, title, text string) Document {
	return Document{
		ID:    id,
		Kind:  KindLocalFile,
		Text:  text,
		Title: title,
		LocalFile: &LocalFileOrigin{
			Path:   path,
			Name:   name,
			Format: format,
		},
	}
}

// NewWebpageDocument creates a document for a crawled page.
func NewWebpageDocument(id, url, title, text string) Document {
	return Document{
		ID:      id,
		Kind:    KindWebpage,
		Text:    text,
		Title:   title,
		Webpage: &WebpageOrigin{URL: url},
	}
}

// Source returns the filename for local files and the URL for webpages.
func (d Document) Source() string {
	switch d.Kind {
	case KindLocalFile:
		if d.LocalFile != nil {
			return d.LocalFile.Name
		}
	case KindWebpage:
		if d.Webpage != nil {
			return d.Webpage.URL
		}
	}
	return ""
}

// Validate checks that the populated variant matches Kind.
func (d Document) Validate() error {
	switch d.Kind {
	case KindLocalFile:
		if d.LocalFile == nil || d.Webpage != nil {
			return fmt.Errorf("%w: local file document must carry only a file origin", ErrInvalidInput)
		}
	case KindWebpage:
		if d.Webpage == nil || d.LocalFile != nil {
			return fmt.Errorf("%w: webpage document must carry only a URL origin", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, d.Kind)
	}
	return nil
}

// Chunk is an overlapping window of a document's text.
// Chunks have no identity beyond their position in the index.
type Chunk struct {
	// Text is the window content, at most the configured chunk size.
	Text string

	// Position is the ordinal within the parent document.
	Position int

	// DocumentID links to the parent Document.
	DocumentID string

	// Source is the parent's source identifier (filename or URL).
	Source string

	// Kind is the parent's document kind.
	Kind DocumentKind

	// Title is the parent's title.
	Title string
}

// ChunkOf builds a chunk that inherits the parent's metadata verbatim.
func ChunkOf(doc Document, position int, text string) Chunk {
	return Chunk{
		Text:       text,
		Position:   position,
		DocumentID: doc.ID,
		Source:     doc.Source(),
		Kind:       doc.Kind,
		Title:      doc.Title,
	}
}
