package driving

import (
	"context"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

// IngestService collects documents from local files and the web.
type IngestService interface {
	// Ingest reads the configured sources and returns the combined corpus.
	Ingest(ctx context.Context, opts domain.IngestOptions) (*domain.IngestReport, error)

	// Cached returns the corpus stored by the last persisted ingest.
	Cached(ctx context.Context) ([]domain.Document, error)
}
