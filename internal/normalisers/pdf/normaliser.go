// Package pdf provides a Normaliser for PDF documents.
//
// Text extraction goes through docconv, which shells out to the poppler
// tools pdftotext and pdfinfo. Use CheckAvailable to test for them.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

// maxTitleLen is the longest first line accepted as a title.
const maxTitleLen = 200

// Converter extracts text and metadata from PDF bytes.
type Converter func(r io.Reader) (string, map[string]string, error)

// Normaliser handles PDF documents.
type Normaliser struct {
	convert   Converter
	checkTool bool
}

// New creates a PDF normaliser backed by docconv.
func New() *Normaliser {
	return &Normaliser{convert: docconv.ConvertPDF, checkTool: true}
}

// NewWithConverter creates a PDF normaliser with a custom converter.
func NewWithConverter(c Converter) *Normaliser {
	return &Normaliser{convert: c}
}

// CheckAvailable returns ErrPDFToolNotFound if pdftotext is missing.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for installing pdftotext.
func InstallInstructions() string {
	return `PDF support requires pdftotext from poppler:
  macOS:         brew install poppler
  Debian/Ubuntu: apt install poppler-utils
  Fedora:        dnf install poppler-utils`
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise extracts the text of every page.
func (n *Normaliser) Normalise(_ context.Context, raw *driven.RawFile) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if n.checkTool {
		if err := CheckAvailable(); err != nil {
			return nil, err
		}
	}

	text, meta, err := n.convert(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed for %s: %w", raw.Name, err)
	}
	text = strings.TrimSpace(text)

	title := strings.TrimSpace(meta["Title"])
	if title == "" {
		title = extractTitle(text, raw.Name)
	}

	doc := domain.NewLocalFileDocument(uuid.New().String(), raw.Path, raw.Name, "pdf", title, text)
	return &doc, nil
}

// extractTitle uses the first short non-empty line, or the filename.
func extractTitle(content, name string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.ContainsRune(line, 0) {
			continue
		}
		if len(line) <= maxTitleLen {
			return line
		}
	}

	filename := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return strings.NewReplacer("_", " ", "-", " ").Replace(filename)
}
