package driven

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// DocumentLoader reads every supported file in a directory.
// Unreadable or empty files are skipped, never failing the batch.
type DocumentLoader interface {
	// Load scans dir once and returns its documents.
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}

// Crawler walks a website breadth-first from a seed URL.
// Per-page failures are skipped, never failing the crawl.
type Crawler interface {
	// Crawl returns at most maxPages webpage documents.
	Crawl(ctx context.Context, seedURL string, maxPages int) ([]domain.Document, error)
}
