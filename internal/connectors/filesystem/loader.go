package filesystem

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
	"github.com/custodia-labs/sercha-assist/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-assist/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// officeTempPrefix marks lock files Word leaves next to open documents.
const officeTempPrefix = "~$"

// Loader reads every supported file directly inside a directory.
// Subdirectories are not descended into.
type Loader struct {
	registry driven.NormaliserRegistry
}

// NewLoader creates a loader that extracts text through registry.
func NewLoader(registry driven.NormaliserRegistry) *Loader {
	return &Loader{registry: registry}
}

// Load scans dir once, in filename order. Files that are hidden, Office
// temp files, of an unsupported type, unreadable, empty or that fail
// extraction are logged and skipped.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory %s does not exist", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	supported := make(map[string]bool)
	for _, t := range l.registry.SupportedMIMETypes() {
		supported[t] = true
	}

	var docs []domain.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return docs, err
		}

		name := entry.Name()
		if entry.IsDir() || isHidden(name) || strings.HasPrefix(name, officeTempPrefix) {
			continue
		}

		mimeType := detectMIMEType(name)
		if !supported[mimeType] {
			logger.Debug("Skipping %s: unsupported type %s", name, mimeType)
			continue
		}

		doc, err := l.loadFile(ctx, filepath.Join(dir, name), mimeType)
		if err != nil {
			logger.Warn("Skipping %s: %v", name, err)
			continue
		}
		logger.Info("Loaded %s: %s", doc.LocalFile.Format, name)
		docs = append(docs, *doc)
	}

	return docs, nil
}

func (l *Loader) loadFile(ctx context.Context, path, mimeType string) (*domain.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	doc, err := l.registry.Normalise(ctx, &driven.RawFile{
		Path:     path,
		Name:     filepath.Base(path),
		MIMEType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(doc.Text) == "" {
		return nil, fmt.Errorf("no text could be extracted")
	}
	return doc, nil
}

// knownTypes covers extensions whose system MIME registration varies.
var knownTypes = map[string]string{
	".pdf":      "application/pdf",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".csv":      "text/csv",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "application/xhtml+xml",
}

// detectMIMEType maps a filename extension to a MIME type without
// parameters. Files without an extension are treated as plain text.
func detectMIMEType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return "text/plain"
	}
	if t, ok := knownTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil {
			return mediaType
		}
	}
	return "application/octet-stream"
}

// isHidden reports whether a file name starts with a dot.
func isHidden(name string) bool {
	return name != "." && name != ".." && strings.HasPrefix(name, ".")
}
